package types

import "time"

// User is an account on the issue tracker
type User struct {
	Login string `mapstructure:"login"`
}

// Label is a colored issue label
type Label struct {
	Name string `mapstructure:"name"`

	// Color is a hex triplet without the leading #
	Color string `mapstructure:"color"`
}

// PullRequestRef marks an issue that is a pull request
type PullRequestRef struct {
	HTMLURL string `mapstructure:"html_url"`
}

// Milestone groups issues toward a due date
type Milestone struct {
	Number       int        `mapstructure:"number"`
	Title        string     `mapstructure:"title"`
	Description  string     `mapstructure:"description"`
	State        string     `mapstructure:"state"`
	Creator      *User      `mapstructure:"creator"`
	CreatedAt    time.Time  `mapstructure:"created_at"`
	DueOn        *time.Time `mapstructure:"due_on"`
	OpenIssues   int        `mapstructure:"open_issues"`
	ClosedIssues int        `mapstructure:"closed_issues"`
}

// PastDue reports whether the milestone's due date is not after now
func (m *Milestone) PastDue(now time.Time) bool {
	return m != nil && m.DueOn != nil && !m.DueOn.After(now)
}

// Issue is an issue or the issue side of a pull request
type Issue struct {
	Number    int        `mapstructure:"number"`
	Title     string     `mapstructure:"title"`
	Body      string     `mapstructure:"body"`
	State     string     `mapstructure:"state"`
	URL       string     `mapstructure:"url"`
	User      User       `mapstructure:"user"`
	Assignee  *User      `mapstructure:"assignee"`
	Labels    []Label    `mapstructure:"labels"`
	Milestone *Milestone `mapstructure:"milestone"`
	Comments  int        `mapstructure:"comments"`
	Merged    bool       `mapstructure:"merged"`
	CreatedAt time.Time  `mapstructure:"created_at"`

	// PullRequest is set when the issue is a pull request
	PullRequest *PullRequestRef `mapstructure:"pull_request"`

	// Repo is the short repository name, filled in for cross-repository
	// listings
	Repo string `mapstructure:"repo"`
}

// IsPull reports whether the issue is a pull request
func (i *Issue) IsPull() bool {
	return i.PullRequest != nil && i.PullRequest.HTMLURL != ""
}

// Branch is one end of a pull request
type Branch struct {
	Label string `mapstructure:"label"`
}

// Pull is a pull request with its merge and change statistics
type Pull struct {
	Issue `mapstructure:",squash"`

	Additions    int        `mapstructure:"additions"`
	Deletions    int        `mapstructure:"deletions"`
	Commits      int        `mapstructure:"commits"`
	ChangedFiles int        `mapstructure:"changed_files"`
	MergedAt     *time.Time `mapstructure:"merged_at"`
	MergedBy     *User      `mapstructure:"merged_by"`
	Head         Branch     `mapstructure:"head"`
	Base         Branch     `mapstructure:"base"`

	// MergeableState is clean, behind, dirty, or another state the tracker
	// reports
	MergeableState string `mapstructure:"mergeable_state"`
}

// Comment is a comment on an issue
type Comment struct {
	User      User      `mapstructure:"user"`
	Body      string    `mapstructure:"body"`
	CreatedAt time.Time `mapstructure:"created_at"`
}

// Event is something that happened to an issue
type Event struct {
	Event     string    `mapstructure:"event"`
	Actor     User      `mapstructure:"actor"`
	CommitID  string    `mapstructure:"commit_id"`
	CreatedAt time.Time `mapstructure:"created_at"`
}

// TimelineEntry is either a comment or an event
type TimelineEntry struct {
	Comment *Comment
	Event   *Event
}

// CommitDetail holds the git side of a commit
type CommitDetail struct {
	Message string `mapstructure:"message"`
}

// Commit is a commit of a pull request
type Commit struct {
	SHA    string       `mapstructure:"sha"`
	Author *User        `mapstructure:"author"`
	Commit CommitDetail `mapstructure:"commit"`
}

// File is a file changed by a pull request
type File struct {
	Filename  string `mapstructure:"filename"`
	Status    string `mapstructure:"status"`
	Additions int    `mapstructure:"additions"`
	Deletions int    `mapstructure:"deletions"`
	Changes   int    `mapstructure:"changes"`
}
