package format

import (
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/ghi/pkg/types"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuesHeader(t *testing.T) {
	r := plainRenderer(t)

	tests := []struct {
		name  string
		query types.Query
		want  string
	}{
		{"repository", types.Query{Repo: "o/r"}, "# o/r open issues"},
		{"milestone number and assignee",
			types.Query{Repo: "o/r", Milestone: "3", Assignee: "alice"},
			"# o/r milestone #3 open issues, assigned to you"},
		{"any milestone",
			types.Query{Repo: "o/r", Milestone: "*", Assignee: "none", Mentioned: "bob"},
			"# o/r open issues with a milestone, unassigned, mentioning bob"},
		{"no milestone, assigned",
			types.Query{Repo: "o/r", Milestone: "none", Assignee: "*"},
			"# o/r open issues without a milestone, assigned"},
		{"global", types.Query{}, "# Global, open issues assigned to you"},
		{"organization filter",
			types.Query{Org: "acme", Filter: "created", State: "closed"},
			"# acme closed issues you created"},
		{"subscribed", types.Query{Filter: "subscribed"}, "# Global, open issues you're subscribed to"},
		{"creator, labels and sort",
			types.Query{Repo: "o/r", Creator: "bob", Labels: "bug,ui", ExcludeLabels: "wontfix", Sort: "updated", Reverse: true},
			"# o/r open issues bob created, labeled bug, ui, excluding those labeled wontfix, by updated ascending"},
		{"descending", types.Query{Repo: "o/r", Sort: "created"}, "# o/r open issues, by created descending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IssuesHeader(tt.query))
		})
	}
}

func TestIssuesHeaderColoredByState(t *testing.T) {
	r := newTestRenderer(t, 40, termenv.ANSI)
	assert.Equal(t, r.theme.Fg("ff0000", "# o/r closed issues"), r.IssuesHeader(types.Query{Repo: "o/r", State: "closed"}))
}

func TestIssuesEmpty(t *testing.T) {
	assert.Equal(t, []string{"None."}, plainRenderer(t).Issues(nil, ListOptions{}))
}

func TestIssuesListing(t *testing.T) {
	r := newTestRenderer(t, 80, termenv.Ascii)
	issues := []types.Issue{
		{
			Number:    7,
			Title:     "Fix pager",
			Labels:    []types.Label{{Name: "bug", Color: "fc2929"}},
			Comments:  2,
			Assignee:  &types.User{Login: "alice"},
			Milestone: &types.Milestone{Title: "v1"},
		},
		{
			Number:      12,
			Title:       "Add spinner",
			PullRequest: &types.PullRequestRef{HTMLURL: "https://github.com/o/r/pull/12"},
		},
	}

	lines := r.Issues(issues, ListOptions{})
	assert.Equal(t, []string{
		"   7  Fix pager [bug] v1 2 @alice ‡",
		"  12  Add spinner ↑",
	}, lines)

	hidden := r.Issues(issues, ListOptions{HideLabels: true})
	assert.Equal(t, "   7  Fix pager v1 2 @alice ‡", hidden[0])
}

func TestIssuesIncludeRepo(t *testing.T) {
	r := newTestRenderer(t, 80, termenv.Ascii)
	issues := []types.Issue{
		{Number: 1, Title: "one", URL: "https://api.github.com/repos/o/ghi/issues/1"},
		{Number: 2, Title: "two", URL: "https://api.github.com/repos/o/tools/issues/2"},
	}

	lines := r.Issues(issues, ListOptions{IncludeRepo: true})
	assert.Equal(t, []string{
		"    ghi 1  one",
		"  tools 2  two",
	}, lines)
}

func TestIssuesTruncatesTitle(t *testing.T) {
	r := newTestRenderer(t, 30, termenv.Ascii)
	issues := []types.Issue{{Number: 1, Title: "The quick brown fox jumps over the lazy dog"}}

	assert.Equal(t, []string{"  1  The quick brown fox..."}, r.Issues(issues, ListOptions{}))
}

func TestIssuesColorsAssignee(t *testing.T) {
	r := newTestRenderer(t, 80, termenv.ANSI)
	mine := r.Issues([]types.Issue{{Number: 1, Title: "x", Assignee: &types.User{Login: "alice"}}}, ListOptions{})
	theirs := r.Issues([]types.Issue{{Number: 1, Title: "x", Assignee: &types.User{Login: "bob"}}}, ListOptions{})

	assert.True(t, strings.HasSuffix(mine[0], r.theme.Fg("yellow", "@alice")))
	assert.True(t, strings.HasSuffix(theirs[0], r.theme.Fg("gray", "@bob")))
}

func sampleIssue() *types.Issue {
	return &types.Issue{
		Number:    7,
		Title:     "Fix pager",
		Body:      "Details here.",
		State:     "open",
		User:      types.User{Login: "octocat"},
		Assignee:  &types.User{Login: "alice"},
		Labels:    []types.Label{{Name: "bug", Color: "fc2929"}},
		Comments:  1,
		CreatedAt: now.Add(-2 * time.Hour),
	}
}

func TestIssue(t *testing.T) {
	r := plainRenderer(t)

	got, err := r.Issue(sampleIssue(), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "#7: Fix pager\n"+
		"@octocat opened this issue 2 hours ago. [open] (1 comment)\n"+
		"@alice is assigned. [bug]\n"+
		"\n"+
		"    Details here.\n"+
		"\n", got)
}

func TestIssueMinimal(t *testing.T) {
	r := plainRenderer(t)
	issue := &types.Issue{
		Number:    3,
		Title:     "Crash",
		State:     "closed",
		User:      types.User{Login: "bob"},
		CreatedAt: now.Add(-3 * 24 * time.Hour),
		Merged:    true,
		Milestone: &types.Milestone{Number: 2, Title: "v2", DueOn: timePtr(now.Add(-time.Hour))},
	}

	got, err := r.Issue(issue, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "#3: Crash\n"+
		"@bob opened this issue 3 days ago. [merged] [closed]\n"+
		"Milestone #2: v2 ⚠\n\n", got)
}

func TestIssueWrapsTitle(t *testing.T) {
	r := plainRenderer(t)
	issue := sampleIssue()
	issue.Title = "A title that is much too long to fit on one line"

	got, err := r.Issue(issue, 20, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "#7: A title that is\nmuch too long to\n"), got)
}

func TestIssueTitleIsBright(t *testing.T) {
	r := newTestRenderer(t, 40, termenv.ANSI)
	issue := sampleIssue()
	issue.Title = "Use **bold**"

	got, err := r.Issue(issue, 0, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, r.theme.Bright("#7: Use **bold**")+"\n"), "title markup stays plain: %q", got)
}

func TestPull(t *testing.T) {
	r := plainRenderer(t)
	pull := &types.Pull{
		Issue:          *sampleIssue(),
		Additions:      3,
		Deletions:      1,
		Commits:        2,
		ChangedFiles:   1,
		Head:           types.Branch{Label: "me:feat"},
		Base:           types.Branch{Label: "o:main"},
		MergeableState: "clean",
	}
	pull.PullRequest = &types.PullRequestRef{HTMLURL: "https://github.com/o/r/pull/7"}
	pull.Body = ""

	got, err := r.Pull(pull, 0)
	require.NoError(t, err)
	assert.Equal(t, "↑7: Fix pager\n"+
		"@octocat opened this pull request 2 hours ago. [open] (1 comment)\n"+
		"@alice is assigned. [bug]\n"+
		"\n"+
		"    o:main ⬅ me:feat\n"+
		"    ✔ able to merge\n"+
		"\n"+
		"    2 commits, 1 file changed\n"+
		"    +3 "+strings.Repeat("∎", 19)+" -1\n"+
		"\n", got)
}

func TestComment(t *testing.T) {
	r := plainRenderer(t)
	got, err := r.Comment(&types.Comment{
		User:      types.User{Login: "alice"},
		Body:      "Looks good",
		CreatedAt: now.Add(-5 * time.Minute),
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, "@alice commented 5 minutes ago:\n    Looks good\n\n\n", got)
}

func TestEvent(t *testing.T) {
	r := plainRenderer(t)

	got, err := r.Event(&types.Event{
		Event:     "closed",
		Actor:     types.User{Login: "bob"},
		CommitID:  "abcdef1234567",
		CreatedAt: now.Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "⁕ closed by @bob through abcdef1 1 day ago\n\n", got)

	got, err = r.Event(&types.Event{Event: "reopened", Actor: types.User{Login: "bob"}, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "⁕ reopened by @bob 0 seconds ago\n\n", got)
}

func TestCommentsAndEvents(t *testing.T) {
	r := plainRenderer(t)

	empty, err := r.CommentsAndEvents(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"None."}, empty)

	entries := []types.TimelineEntry{
		{Comment: &types.Comment{User: types.User{Login: "alice"}, Body: "hi", CreatedAt: now}},
		{Event: &types.Event{Event: "subscribed", Actor: types.User{Login: "bob"}, CreatedAt: now}},
		{Event: &types.Event{Event: "mentioned", Actor: types.User{Login: "bob"}, CreatedAt: now}},
		{Event: &types.Event{Event: "closed", Actor: types.User{Login: "bob"}, CreatedAt: now}},
		{},
	}
	got, err := r.CommentsAndEvents(entries, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], "@alice commented"))
	assert.True(t, strings.HasPrefix(got[1], "⁕ closed by @bob"))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
