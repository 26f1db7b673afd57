package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render issue tracker records in the terminal"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgShowShort       = "Show a single record in full"
	MsgListShort       = "List records one per line"
	MsgDiffShort       = "Show a colored unified diff"
	MsgEditorShort     = "Print the message an editor would open with"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion scripts"

	// Flags
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoPager     = "Write output directly instead of through a pager"
	MsgFlagColor       = "Color output: auto, always or never"
	MsgFlagUser        = "Login whose @mentions are highlighted"
	MsgFlagIncludeRepo = "Show the repository of each issue"
	MsgFlagHideLabels  = "Leave labels out of issue listings"
	MsgFlagRepo        = "Repository named in editor instructions"
	MsgFlagComment     = "Record file of the comment being edited"
	MsgFlagVerboseEdit = "Include the issue in the comment instructions"
	MsgFlagTemplate    = "Print a commented configuration template instead"

	// Errors
	MsgErrNoCommand  = "no command specified"
	MsgErrColor      = "--color must be auto, always or never, not %q"
	MsgErrNotMapping = "%s does not hold a single record"
	MsgErrNotList    = "%s does not hold a list of records"

	// Version output
	MsgVersionFormat = "ghi version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
)

// Long descriptions
const (
	MsgRootLong = `ghi renders issue tracker records (issues, milestones, pull requests,
comments, commits and diffs) for the terminal.

Records are read from YAML or JSON files shaped like the tracker's API
responses. Output is colored for the terminal, laid out for its width and
paged through less (or ghi.pager, core.pager, $PAGER) when it is interactive.`

	MsgShowLong = `Show formats one record in full: the issue or pull request with its
description, or the milestone with its progress.

An issue file may carry a "timeline" list of comments and events, which is
shown after the issue.`

	MsgListLong = `List formats records one per line.

An issues file is either a list of issues or a mapping with "issues" and an
optional "query" describing the listing, which becomes the header.`

	MsgEditorLong = `Editor prints the message an editor opens with when writing an issue,
milestone or comment. Instructions are Markdown comments, which the tracker
strips.`
)
