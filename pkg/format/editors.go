package format

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/ghi/pkg/types"
)

type editorView struct {
	Repo   string
	Number int
	Detail string
}

// IssueEditor is the message an editor opens with to write or change an
// issue. Instructions come as Markdown comments after the issue's title and
// body.
func (r *Renderer) IssueEditor(repo string, issue *types.Issue) (string, error) {
	view := editorView{Repo: repo}
	if issue != nil {
		detail, err := r.plainDetail(func() (string, error) {
			return r.Issue(issue, r.Columns()-2, "")
		})
		if err != nil {
			return "", err
		}
		view.Detail = detail
	}

	message, err := r.execute("issue_editor", view)
	if err != nil {
		return "", err
	}
	message = "\n" + commentOut(message)
	if issue != nil {
		message = issue.Title + "\n\n" + issue.Body + message
	}
	return message, nil
}

// MilestoneEditor is the message an editor opens with to write or change a
// milestone
func (r *Renderer) MilestoneEditor(repo string, m *types.Milestone) (string, error) {
	view := editorView{Repo: repo}
	if m != nil {
		detail, err := r.plainDetail(func() (string, error) {
			return r.Milestone(m, r.Columns()-2)
		})
		if err != nil {
			return "", err
		}
		view.Detail = detail
	}

	message, err := r.execute("milestone_editor", view)
	if err != nil {
		return "", err
	}
	message = commentOut(message)
	if m != nil {
		message = m.Title + "\n\n" + m.Description + message
	}
	return message, nil
}

// CommentEditor is the message an editor opens with to comment on an issue
// or change a comment. verbose adds the issue itself to the instructions.
func (r *Renderer) CommentEditor(repo string, issue *types.Issue, comment *types.Comment, verbose bool) (string, error) {
	detail, err := r.plainDetail(func() (string, error) {
		var b strings.Builder
		if verbose {
			text, err := r.Issue(issue, 0, "")
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
		if comment != nil {
			text, err := r.Comment(comment, r.Columns()-2)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
		return b.String(), nil
	})
	if err != nil {
		return "", err
	}

	message, err := r.execute("comment_editor", editorView{
		Repo:   repo,
		Number: issue.Number,
		Detail: detail,
	})
	if err != nil {
		return "", err
	}
	message = commentOut(message)
	if comment != nil {
		message = comment.Body + message
	}
	return message, nil
}

func (r *Renderer) plainDetail(fn func() (string, error)) (string, error) {
	var err error
	text := r.noColor(func() string {
		var s string
		s, err = fn()
		return s
	})
	return text, err
}

// commentOut trims the message and wraps every line but the first in a
// Markdown comment, padded so the closing markers line up
func commentOut(message string) string {
	lines := strings.Split(strings.TrimRightFunc(message, unicode.IsSpace), "\n")

	longest := 0
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimRightFunc(lines[i], unicode.IsSpace)
		longest = max(longest, len([]rune(lines[i])))
	}
	for i := 1; i < len(lines); i++ {
		lines[i] = "<!-- " + lines[i] + strings.Repeat(" ", longest-len([]rune(lines[i]))) + " -->"
	}
	return strings.Join(lines, "\n")
}
