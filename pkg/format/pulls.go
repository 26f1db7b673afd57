package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/arthur-debert/ghi/pkg/types"
)

const (
	changeSign = "∎"
	// ChangeVizSize is the bar width in a pull request summary
	ChangeVizSize = 18
	// FileChangeVizSize is the bar width in a file listing
	FileChangeVizSize = 5
)

var (
	diffHeader = regexp.MustCompile(`^(?:diff|index|---|\+\+\+)`)
	diffHunk   = regexp.MustCompile(`^(@@ .* @@)(.*)$`)
)

var fileStatus = map[string]string{
	"added":    "+",
	"modified": "~",
	"removed":  "-",
}

// PullInfo is the merge state and the change statistics of a pull request
func (r *Renderer) PullInfo(pull *types.Pull) string {
	return r.MergeStats(pull, 4) + r.PullStats(pull, 4)
}

// PullStats summarizes a pull request's commits, files and line changes
func (r *Renderer) PullStats(pull *types.Pull, indent int) string {
	margin := strings.Repeat(" ", indent)
	commits := r.CountWithPlural(pull.Commits, "commit")
	files := r.CountWithPlural(pull.ChangedFiles, "file") + " changed"

	return margin + r.theme.Fg(r.color("highlight"), commits+", "+files) + "\n" +
		margin + r.theme.Fg(r.color("addition"), fmt.Sprintf("+%d", pull.Additions)) +
		" " + r.ChangeViz(pull.Additions, pull.Deletions, ChangeVizSize) + " " +
		r.theme.Fg(r.color("deletion"), fmt.Sprintf("-%d", pull.Deletions))
}

// ChangeViz draws additions and deletions as a bar of size signs split in
// proportion. Without any change the bar is drawn muted.
func (r *Renderer) ChangeViz(additions, deletions, size int) string {
	total := float64(additions + deletions)
	if total == 0 {
		return r.theme.Fg(r.color("muted"), strings.Repeat(changeSign, size))
	}
	added := int(math.Round(float64(additions) / total * float64(size)))
	deleted := int(math.Round(float64(deletions) / total * float64(size)))
	return r.theme.Fg(r.color("addition"), strings.Repeat(changeSign, added)) +
		r.theme.Fg(r.color("deletion"), strings.Repeat(changeSign, deleted))
}

// MergeStats tells who merged a pull request, or where it would merge and
// whether it can
func (r *Renderer) MergeStats(pull *types.Pull, indent int) string {
	margin := strings.Repeat(" ", indent)
	if pull.MergedAt != nil {
		merger := ""
		if pull.MergedBy != nil {
			merger = pull.MergedBy.Login
		}
		return fmt.Sprintf("%smerged by @%s %s\n\n", margin, merger, r.Date(*pull.MergedAt, true))
	}
	return margin + r.MergeHeadAndBase(pull) + "\n" +
		margin + r.Mergeability(pull.MergeableState) + "\n\n"
}

// Mergeability describes a mergeable state. States that say nothing about
// conflicts give an empty string.
func (r *Renderer) Mergeability(state string) string {
	switch state {
	case "clean":
		return r.theme.Fg(r.color("mergeable"), "✔ able to merge")
	case "behind":
		return r.theme.Fg(r.color("rebase"), "✔ able to merge, but needs a rebase")
	case "dirty":
		return r.theme.Fg(r.color("dirty"), "✗ pull request is dirty")
	default:
		return ""
	}
}

// MergeHeadAndBase shows the base branch taking the head branch
func (r *Renderer) MergeHeadAndBase(pull *types.Pull) string {
	highlight := r.color("highlight")
	return r.theme.Fg(highlight, pull.Base.Label) + " ⬅ " + r.theme.Fg(highlight, pull.Head.Label)
}

// Commits lists a pull request's commits under a header naming their
// authors
func (r *Renderer) Commits(commits []types.Commit) string {
	lines := make([]string, 0, len(commits))
	for i := range commits {
		lines = append(lines, r.Commit(&commits[i], 4))
	}
	return r.CommitsHeader(commits) + "\n\n" + strings.Join(lines, "\n")
}

// CommitsHeader is e.g. "3 commits by alice, bob and carol"
func (r *Renderer) CommitsHeader(commits []types.Commit) string {
	var authors []string
	seen := make(map[string]bool)
	for _, c := range commits {
		if c.Author == nil || seen[c.Author.Login] {
			continue
		}
		seen[c.Author.Login] = true
		authors = append(authors, c.Author.Login)
	}

	text := r.CountWithPlural(len(commits), "commit")
	if len(authors) > 0 {
		text += " by " + EnumerativeConcat(authors, "and")
	}
	return r.theme.Fg(r.color("highlight"), text)
}

// EnumerativeConcat joins items as a sentence: "a, b and c"
func EnumerativeConcat(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " " + conjunction + " " + items[last]
}

// Commit formats a commit as its short hash and the title of its message
func (r *Renderer) Commit(c *types.Commit, indent int) string {
	title, _, _ := strings.Cut(c.Commit.Message, "\n\n")
	return fmt.Sprintf("%s* %s | %s", strings.Repeat(" ", indent), shortSHA(c.SHA), r.layout.Truncate(title, 20))
}

// Files lists the files a pull request changes
func (r *Renderer) Files(files []types.File) string {
	lines := make([]string, 0, len(files))
	for i := range files {
		lines = append(lines, r.File(&files[i]))
	}
	return r.FilesHeader(files) + "\n\n" + strings.Join(lines, "\n")
}

// FilesHeader is e.g. "2 files, with 10 additions and 3 deletions"
func (r *Renderer) FilesHeader(files []types.File) string {
	var additions, deletions int
	for _, f := range files {
		additions += f.Additions
		deletions += f.Deletions
	}
	text := fmt.Sprintf("%s, with %d additions and %d deletions",
		r.CountWithPlural(len(files), "file"), additions, deletions)
	return r.theme.Fg(r.color("highlight"), text)
}

// File formats one changed file: status sign, name, change count and bar
func (r *Renderer) File(f *types.File) string {
	status := ""
	if sign, ok := fileStatus[f.Status]; ok {
		status = r.theme.Fg(r.palette.File(f.Status), sign)
	}
	return fmt.Sprintf("%s %-50s%d %s", status, f.Filename, f.Changes,
		r.ChangeViz(f.Additions, f.Deletions, FileChangeVizSize))
}

// Diff colors a unified diff line by line: file headers bold, hunk ranges,
// additions and deletions in their colors
func (r *Renderer) Diff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case diffHeader.MatchString(line):
			lines[i] = r.theme.Bright(line)
		case diffHunk.MatchString(line):
			m := diffHunk.FindStringSubmatch(line)
			lines[i] = r.theme.Fg(r.palette.DiffColor("hunk"), m[1]) + m[2]
		case strings.HasPrefix(line, "+"):
			lines[i] = r.theme.Fg(r.palette.DiffColor("addition"), line)
		case strings.HasPrefix(line, "-"):
			lines[i] = r.theme.Fg(r.palette.DiffColor("deletion"), line)
		}
	}
	return strings.Join(lines, "\n")
}
