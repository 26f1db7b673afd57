package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/ghi/pkg/types"
)

var repoFromURL = regexp.MustCompile(`/repos/[^/]+/([^/]+)`)

// unimportantEvents are left out of an issue's timeline
var unimportantEvents = map[string]bool{
	"subscribed":   true,
	"unsubscribed": true,
	"mentioned":    true,
}

// ListOptions controls an issue listing
type ListOptions struct {
	// IncludeRepo prefixes each issue with its repository name
	IncludeRepo bool
	HideLabels  bool
}

// IssuesHeader describes what an issue listing shows, e.g.
// "# o/r open issues, assigned to you, labeled bug, ui"
func (r *Renderer) IssuesHeader(q types.Query) string {
	state := q.State
	if state == "" {
		state = "open"
	}

	scope := "Global,"
	switch {
	case q.Repo != "":
		scope = q.Repo
	case q.Org != "":
		scope = q.Org
	}

	var b strings.Builder
	if q.Repo != "" {
		switch q.Milestone {
		case "":
		case "*":
			fmt.Fprintf(&b, "# %s %s issues with a milestone", scope, state)
		case "none":
			fmt.Fprintf(&b, "# %s %s issues without a milestone", scope, state)
		default:
			fmt.Fprintf(&b, "# %s milestone #%s %s issues", scope, q.Milestone, state)
		}
		if b.Len() == 0 {
			fmt.Fprintf(&b, "# %s %s issues", scope, state)
		}

		switch q.Assignee {
		case "":
		case "*":
			b.WriteString(", assigned")
		case "none":
			b.WriteString(", unassigned")
		default:
			b.WriteString(", assigned to " + r.Username(q.Assignee))
		}
		if q.Mentioned != "" {
			b.WriteString(", mentioning " + r.Username(q.Mentioned))
		}
	} else {
		fmt.Fprintf(&b, "# %s %s issues", scope, state)
		switch q.Filter {
		case "created":
			b.WriteString(" you created")
		case "mentioned":
			b.WriteString(" that mention you")
		case "subscribed":
			b.WriteString(" you're subscribed to")
		case "all":
			b.WriteString(" that you can see")
		default:
			b.WriteString(" assigned to you")
		}
	}

	if q.Creator != "" {
		b.WriteString(" " + r.Username(q.Creator) + " created")
	}
	if q.Labels != "" {
		b.WriteString(", labeled " + strings.ReplaceAll(q.Labels, ",", ", "))
	}
	if q.ExcludeLabels != "" {
		b.WriteString(", excluding those labeled " + strings.ReplaceAll(q.ExcludeLabels, ",", ", "))
	}
	if q.Sort != "" {
		order := "descending"
		if q.Reverse {
			order = "ascending"
		}
		fmt.Fprintf(&b, ", by %s %s", q.Sort, order)
	}

	return r.State(state, b.String(), false)
}

// Issues formats one line per issue: number, title truncated to the space
// the other fields leave, labels, milestone, comment count, a pull request
// marker and the assignee.
func (r *Renderer) Issues(issues []types.Issue, opts ListOptions) []string {
	if len(issues) == 0 {
		return []string{None}
	}

	if opts.IncludeRepo {
		for i := range issues {
			if m := repoFromURL.FindStringSubmatch(issues[i].URL); m != nil {
				issues[i].Repo = m[1]
			}
		}
	}

	var nmax, rmax int
	for _, issue := range issues {
		nmax = max(nmax, len(strconv.Itoa(issue.Number)))
		rmax = max(rmax, len(issue.Repo))
	}

	muted := r.color("muted")
	lines := make([]string, 0, len(issues))
	for i := range issues {
		issue := &issues[i]

		labels := r.Labels(issue.Labels)
		reserved := 9 + nmax + rmax + len([]rune(r.noColor(func() string { return r.Labels(issue.Labels) })))
		if issue.Assignee != nil {
			reserved += len([]rune(issue.Assignee.Login)) + 2
		}
		if issue.IsPull() {
			reserved += 2
		}
		if issue.Comments != 0 {
			reserved += len(strconv.Itoa(issue.Comments)) + 1
		}

		fields := []string{" "}
		if issue.Repo != "" {
			fields = append(fields, fmt.Sprintf("%*s", rmax, issue.Repo))
		}
		fields = append(fields,
			r.Number(fmt.Sprintf("%*d", nmax, issue.Number)),
			r.layout.Truncate(issue.Title, reserved),
		)
		if labels != "" && !opts.HideLabels {
			fields = append(fields, labels)
		}
		if issue.Milestone != nil {
			fields = append(fields, r.theme.Fg(r.color("milestone"), issue.Milestone.Title))
		}
		if issue.Comments != 0 {
			fields = append(fields, r.theme.Fg(muted, strconv.Itoa(issue.Comments)))
		}
		if issue.IsPull() {
			fields = append(fields, r.theme.Fg(muted, "↑"))
		}
		if a := issue.Assignee; a != nil {
			color := r.color("assignee")
			if r.user != "" && a.Login == r.user {
				color = r.color("mention")
			}
			fields = append(fields, r.theme.Fg(color, "@"+a.Login))
		}
		if issue.Milestone != nil {
			fields = append(fields, r.theme.Fg(muted, "‡"))
		}

		lines = append(lines, strings.Join(fields, " "))
	}
	return lines
}

type issueView struct {
	Title     string
	Opened    string
	Assigned  string
	Milestone string
	Extra     string
	Body      string
}

// Issue formats an issue in full. width <= 0 means the terminal width.
// extra, when not empty, is placed between the header and the body.
func (r *Renderer) Issue(issue *types.Issue, width int, extra string) (string, error) {
	width = r.width(width)

	kind, marker := "issue", "#"
	if issue.IsPull() {
		kind, marker = "pull request", "↑"
	}

	title := r.theme.Bright(r.noColor(func() string {
		return r.layout.IndentWidth(fmt.Sprintf("%s%d: %s", marker, issue.Number, issue.Title), 0, width)
	}))

	opened := []string{fmt.Sprintf("@%s opened this %s %s.", issue.User.Login, kind, r.Date(issue.CreatedAt, true))}
	if issue.Merged {
		opened = append(opened, r.StateTag("merged"))
	}
	opened = append(opened, r.StateTag(issue.State))
	if issue.Comments != 0 {
		opened = append(opened, r.theme.Fg(r.color("muted"), "("+r.CountWithPlural(issue.Comments, "comment")+")"))
	}

	var assigned []string
	if issue.Assignee != nil {
		assigned = append(assigned, fmt.Sprintf("@%s is assigned.", issue.Assignee.Login))
	}
	if labels := r.Labels(issue.Labels); labels != "" {
		assigned = append(assigned, labels)
	}

	var milestone string
	if m := issue.Milestone; m != nil {
		milestone = fmt.Sprintf("Milestone #%d: %s", m.Number, m.Title)
		if r.PastDue(m) {
			milestone += " " + r.theme.Bright(r.theme.Fg(r.color("warning"), "⚠"))
		}
	}

	var body string
	if issue.Body != "" {
		body = r.layout.IndentWidth(issue.Body, 4, width)
	}

	return r.execute("issue", issueView{
		Title:     title,
		Opened:    strings.Join(opened, " "),
		Assigned:  strings.Join(assigned, " "),
		Milestone: milestone,
		Extra:     extra,
		Body:      body,
	})
}

// Pull formats a pull request in full, with its merge state and change
// statistics after the header
func (r *Renderer) Pull(pull *types.Pull, width int) (string, error) {
	return r.Issue(&pull.Issue, width, r.PullInfo(pull))
}

// CommentsAndEvents formats an issue's timeline. Subscriptions and
// mentions are left out.
func (r *Renderer) CommentsAndEvents(entries []types.TimelineEntry, width int) ([]string, error) {
	if len(entries) == 0 {
		return []string{None}, nil
	}

	var out []string
	for _, entry := range entries {
		var (
			text string
			err  error
		)
		switch {
		case entry.Event != nil:
			if unimportantEvents[entry.Event.Event] {
				continue
			}
			text, err = r.Event(entry.Event)
		case entry.Comment != nil:
			text, err = r.Comment(entry.Comment, width)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

type commentView struct {
	Author string
	Date   string
	Body   string
}

// Comment formats a comment with its body indented
func (r *Renderer) Comment(c *types.Comment, width int) (string, error) {
	return r.execute("comment", commentView{
		Author: c.User.Login,
		Date:   r.Date(c.CreatedAt, true),
		Body:   r.layout.IndentWidth(c.Body, 4, r.width(width)),
	})
}

type eventView struct {
	Bullet string
	Type   string
	Actor  string
	Commit string
	Date   string
}

// Event formats a timeline event on one line
func (r *Renderer) Event(e *types.Event) (string, error) {
	var commit string
	if e.CommitID != "" {
		commit = r.theme.Underline(shortSHA(e.CommitID))
	}
	return r.execute("event", eventView{
		Bullet: r.theme.Bright("⁕"),
		Type:   r.EventType(e.Event),
		Actor:  e.Actor.Login,
		Commit: commit,
		Date:   r.Date(e.CreatedAt, true),
	})
}

// Labels formats labels as tags on their own colors
func (r *Renderer) Labels(labels []types.Label) string {
	tags := make([]string, 0, len(labels))
	for _, l := range labels {
		tags = append(tags, r.theme.Bg(l.Color, r.Tag(l.Name)))
	}
	return strings.Join(tags, " ")
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
