package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arthur-debert/ghi/pkg/types"
)

// Milestones formats one line per milestone, each drawn as a progress bar
func (r *Renderer) Milestones(milestones []types.Milestone) []string {
	if len(milestones) == 0 {
		return []string{None}
	}

	width := 0
	for _, m := range milestones {
		width = max(width, len(strconv.Itoa(m.Number)))
	}

	lines := make([]string, 0, len(milestones))
	for i := range milestones {
		m := &milestones[i]
		pastDue := r.PastDue(m)

		reserved := width + 4
		if pastDue {
			reserved = width + 6
		}
		fields := []string{
			fmt.Sprintf("  %*d:", width, m.Number),
			r.layout.Truncate(m.Title, reserved),
		}
		if pastDue {
			fields = append(fields, "⚠")
		}
		lines = append(lines, r.Percent(m, strings.Join(fields, " ")))
	}
	return lines
}

type milestoneView struct {
	Title       string
	Created     string
	Due         string
	Progress    string
	Description string
}

// Milestone formats a milestone in full. width <= 0 means the terminal
// width.
func (r *Renderer) Milestone(m *types.Milestone, width int) (string, error) {
	width = r.width(width)

	title := r.theme.Bright(r.noColor(func() string {
		return r.layout.IndentWidth(fmt.Sprintf("#%d: %s", m.Number, m.Title), 0, width)
	}))

	creator := ""
	if m.Creator != nil {
		creator = m.Creator.Login
	}
	created := fmt.Sprintf("@%s created this milestone %s. %s", creator, r.Date(m.CreatedAt, true), r.StateTag(m.State))

	var due string
	if m.DueOn != nil {
		if r.PastDue(m) {
			due = r.theme.Bright(r.theme.Fg(r.color("warning"), "⚠")) + " " +
				r.theme.Bright(r.theme.Fg(r.color("danger"), "Past due by "+r.Date(*m.DueOn, false)+"."))
		} else {
			due = "Due in " + r.Date(*m.DueOn, false) + "."
		}
	}

	var description string
	if m.Description != "" {
		description = r.layout.IndentWidth(m.Description, 4, width)
	}

	return r.execute("milestone", milestoneView{
		Title:       title,
		Created:     created,
		Due:         due,
		Progress:    r.Percent(m, ""),
		Description: description,
	})
}

// PastDue reports whether a milestone's due date has passed
func (r *Renderer) PastDue(m *types.Milestone) bool {
	return m.PastDue(r.now())
}

// Completion is the closed share of a milestone's issues, 0 when it has none
func Completion(m *types.Milestone) float64 {
	total := m.OpenIssues + m.ClosedIssues
	if total == 0 {
		return 0
	}
	return float64(m.ClosedIssues) / float64(total)
}

// Percent draws text padded to the terminal width over a progress bar for
// the milestone. Empty text is replaced by the completion figures.
func (r *Renderer) Percent(m *types.Milestone, text string) string {
	complete := Completion(m)
	columns := r.Columns()
	filled := int(math.Round(float64(columns) * complete))

	if text == "" {
		text = fmt.Sprintf(" %d%% (%d closed, %d open)", int(complete*100), m.ClosedIssues, m.OpenIssues)
	}
	runes := []rune(ljust(text, columns))
	if len(runes) > columns {
		runes = runes[:columns]
	}
	filled = min(filled, len(runes))

	return r.theme.Bg(r.color("progress"), string(runes[:filled])) + string(runes[filled:])
}
