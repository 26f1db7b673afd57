package types

// Query describes an issue listing. Empty fields mean "not filtered".
type Query struct {
	Repo      string `mapstructure:"repo"`
	Org       string `mapstructure:"org"`
	State     string `mapstructure:"state"`
	Milestone string `mapstructure:"milestone"`
	Assignee  string `mapstructure:"assignee"`
	Mentioned string `mapstructure:"mentioned"`
	Creator   string `mapstructure:"creator"`

	// Filter applies to listings across repositories: created, mentioned,
	// subscribed, all, or assigned when empty
	Filter string `mapstructure:"filter"`

	// Labels and ExcludeLabels are comma separated
	Labels        string `mapstructure:"labels"`
	ExcludeLabels string `mapstructure:"exclude_labels"`

	Sort    string `mapstructure:"sort"`
	Reverse bool   `mapstructure:"reverse"`
}
