package format

import (
	"strings"
	"testing"

	"github.com/arthur-debert/ghi/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertCommented checks that every line from the first comment on is a
// Markdown comment and that the comments line up
func assertCommented(t *testing.T, message string) {
	t.Helper()
	lines := strings.Split(message, "\n")
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "<!-- ") {
			start = i
			break
		}
	}
	require.GreaterOrEqual(t, start, 0, "no comment in %q", message)

	width := len([]rune(lines[start]))
	for _, line := range lines[start:] {
		assert.True(t, strings.HasPrefix(line, "<!-- "), "line %q", line)
		assert.True(t, strings.HasSuffix(line, " -->"), "line %q", line)
		assert.Equal(t, width, len([]rune(line)), "line %q", line)
	}
}

func TestIssueEditorNew(t *testing.T) {
	r := plainRenderer(t)

	got, err := r.IssueEditor("o/r", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "\n\n<!-- Please explain the issue."), got)
	assert.True(t, strings.HasSuffix(got, "<!-- On o/r"+strings.Repeat(" ", 69)+" -->"), got)
	assertCommented(t, got)
}

func TestIssueEditorExisting(t *testing.T) {
	r := plainRenderer(t)

	got, err := r.IssueEditor("o/r", sampleIssue())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Fix pager\n\nDetails here.\n\n<!-- Please explain"), got)
	assert.Contains(t, got, "<!-- #7: Fix pager ")
	assert.Contains(t, got, "<!-- @octocat opened this issue 2 hours ago. [open] (1 comment)")
	assertCommented(t, got)
}

func TestMilestoneEditor(t *testing.T) {
	r := plainRenderer(t)

	got, err := r.MilestoneEditor("o/r", sampleMilestone())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "v1.0\n\nShip it.\n<!-- Describe the milestone."), got)
	assert.Contains(t, got, "<!-- #3: v1.0 ")
	assertCommented(t, got)

	blank, err := r.MilestoneEditor("o/r", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(blank, "\n<!-- Describe the milestone."), blank)
}

func TestCommentEditor(t *testing.T) {
	r := plainRenderer(t)
	issue := sampleIssue()

	fresh, err := r.CommentEditor("o/r", issue, nil, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fresh, "\n<!-- Leave a comment."), fresh)
	assert.Contains(t, fresh, "On o/r issue #7")
	assert.NotContains(t, fresh, "Fix pager")
	assertCommented(t, fresh)

	comment := &types.Comment{User: types.User{Login: "alice"}, Body: "Looks good", CreatedAt: now}
	edit, err := r.CommentEditor("o/r", issue, comment, true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(edit, "Looks good\n<!-- Leave a comment."), edit)
	assert.Contains(t, edit, "<!-- #7: Fix pager ")
	assert.Contains(t, edit, "<!-- @alice commented 0 seconds ago:")
	assertCommented(t, edit)
}
