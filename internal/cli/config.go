package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ghi/pkg/config"
)

func newConfigCmd(r *runner) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := cmd.OutOrStdout().Write([]byte(config.GenerateConfigContent()))
				return err
			}

			a, err := r.get()
			if err != nil {
				return err
			}
			out, err := a.cfg.TOML()
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)

	return cmd
}
