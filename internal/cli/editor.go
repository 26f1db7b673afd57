package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ghi/pkg/types"
)

func newEditorCmd(r *runner) *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:     "editor",
		Short:   MsgEditorShort,
		Long:    MsgEditorLong,
		GroupID: "records",
	}
	cmd.PersistentFlags().StringVar(&repo, "repo", "", MsgFlagRepo)

	cmd.AddCommand(&cobra.Command{
		Use:   "issue [FILE]",
		Short: "Message for writing an issue, or changing the one in FILE",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			var issue *types.Issue
			if len(args) == 1 {
				if issue, _, err = loadRecord[types.Issue](a, args[0]); err != nil {
					return err
				}
			}
			message, err := a.renderer.IssueEditor(repo, issue)
			if err != nil {
				return err
			}
			return a.print(message + "\n")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "milestone [FILE]",
		Short: "Message for writing a milestone, or changing the one in FILE",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			var m *types.Milestone
			if len(args) == 1 {
				if m, _, err = loadRecord[types.Milestone](a, args[0]); err != nil {
					return err
				}
			}
			message, err := a.renderer.MilestoneEditor(repo, m)
			if err != nil {
				return err
			}
			return a.print(message + "\n")
		},
	})

	cmd.AddCommand(newCommentEditorCmd(r, &repo))

	return cmd
}

func newCommentEditorCmd(r *runner, repo *string) *cobra.Command {
	var (
		commentFile string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "comment ISSUE_FILE",
		Short: "Message for commenting on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			issue, _, err := loadRecord[types.Issue](a, args[0])
			if err != nil {
				return err
			}
			var comment *types.Comment
			if commentFile != "" {
				if comment, _, err = loadRecord[types.Comment](a, commentFile); err != nil {
					return err
				}
			}
			message, err := a.renderer.CommentEditor(*repo, issue, comment, verbose)
			if err != nil {
				return err
			}
			return a.print(message + "\n")
		},
	}

	cmd.Flags().StringVar(&commentFile, "comment", "", MsgFlagComment)
	cmd.Flags().BoolVar(&verbose, "verbose-issue", false, MsgFlagVerboseEdit)

	return cmd
}
