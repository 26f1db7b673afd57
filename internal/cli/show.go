package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ghi/pkg/types"
)

func newShowCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		GroupID: "records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "issue FILE",
		Short: "Show an issue and its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			issue, record, err := loadRecord[types.Issue](a, args[0])
			if err != nil {
				return err
			}

			text, err := a.renderer.Issue(issue, 0, "")
			if err != nil {
				return err
			}
			lines := splitLines(text)

			if items, ok := record["timeline"].([]interface{}); ok {
				entries, err := types.DecodeTimeline(items)
				if err != nil {
					return err
				}
				blocks, err := a.renderer.CommentsAndEvents(entries, 0)
				if err != nil {
					return err
				}
				for _, block := range blocks {
					lines = append(lines, splitLines(block)...)
				}
			}
			return a.page(cmd.Context(), "", lines)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pull FILE",
		Short: "Show a pull request with its merge and change statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			pull, _, err := loadRecord[types.Pull](a, args[0])
			if err != nil {
				return err
			}
			text, err := a.renderer.Pull(pull, 0)
			if err != nil {
				return err
			}
			return a.page(cmd.Context(), "", splitLines(text))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "milestone FILE",
		Short: "Show a milestone and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			m, _, err := loadRecord[types.Milestone](a, args[0])
			if err != nil {
				return err
			}
			text, err := a.renderer.Milestone(m, 0)
			if err != nil {
				return err
			}
			return a.page(cmd.Context(), "", splitLines(text))
		},
	})

	return cmd
}
