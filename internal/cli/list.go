package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ghi/pkg/format"
	"github.com/arthur-debert/ghi/pkg/types"
)

// MilestonesHeader heads milestone listings
const MilestonesHeader = "# Milestones"

func newListCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "records",
	}

	cmd.AddCommand(newListIssuesCmd(r))

	cmd.AddCommand(&cobra.Command{
		Use:   "milestones FILE",
		Short: "List milestones with their progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			milestones, _, err := loadRecords[types.Milestone](a, args[0], "milestones")
			if err != nil {
				return err
			}
			return a.page(cmd.Context(), MilestonesHeader, a.renderer.Milestones(milestones))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "comments FILE",
		Short: "List comments and events of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			entries, err := a.loadTimeline(args[0])
			if err != nil {
				return err
			}
			blocks, err := a.renderer.CommentsAndEvents(entries, 0)
			if err != nil {
				return err
			}
			var lines []string
			for _, block := range blocks {
				lines = append(lines, splitLines(block)...)
			}
			if len(lines) == 0 {
				lines = []string{format.None}
			}
			return a.page(cmd.Context(), "", lines)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "commits FILE",
		Short: "List the commits of a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			commits, _, err := loadRecords[types.Commit](a, args[0], "commits")
			if err != nil {
				return err
			}
			return a.page(cmd.Context(), "", splitLines(a.renderer.Commits(commits)))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "files FILE",
		Short: "List the files a pull request changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			files, _, err := loadRecords[types.File](a, args[0], "files")
			if err != nil {
				return err
			}
			return a.page(cmd.Context(), "", splitLines(a.renderer.Files(files)))
		},
	})

	return cmd
}

func newListIssuesCmd(r *runner) *cobra.Command {
	var opts format.ListOptions

	cmd := &cobra.Command{
		Use:   "issues FILE",
		Short: "List issues under a header describing the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			issues, wrapper, err := loadRecords[types.Issue](a, args[0], "issues")
			if err != nil {
				return err
			}

			var query types.Query
			if raw, ok := wrapper["query"]; ok {
				if err := types.Decode(raw, &query); err != nil {
					return err
				}
			}
			if query.Repo == "" && query.Org == "" {
				opts.IncludeRepo = true
			}
			return a.page(cmd.Context(), a.renderer.IssuesHeader(query), a.renderer.Issues(issues, opts))
		},
	}

	cmd.Flags().BoolVar(&opts.HideLabels, "hide-labels", false, MsgFlagHideLabels)
	cmd.Flags().BoolVar(&opts.IncludeRepo, "include-repo", false, MsgFlagIncludeRepo)

	return cmd
}
