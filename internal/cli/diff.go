package cli

import (
	"github.com/spf13/cobra"
)

func newDiffCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "diff FILE",
		Short:   MsgDiffShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "records",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.get()
			if err != nil {
				return err
			}
			data, err := a.readFile(args[0])
			if err != nil {
				return err
			}
			return a.page(cmd.Context(), "", splitLines(a.renderer.Diff(string(data))))
		},
	}
}
