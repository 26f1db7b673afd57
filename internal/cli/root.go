// Package cli is the ghi command line: cobra commands that load records from
// files and render them through the pager.
package cli

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ghi/internal/version"
	"github.com/arthur-debert/ghi/pkg/cobrax/topics"
	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/terminal"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd(opts ...Option) *cobra.Command {
	r := &runner{}
	for _, opt := range opts {
		opt(&r.settings)
	}
	if r.settings.console == nil {
		r.settings.console = terminal.New(os.Stdout)
	}

	rootCmd := &cobra.Command{
		Use:     "ghi",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{
				Verbosity: r.flags.verbosity,
				Stderr:    r.settings.stderr,
				Color:     r.flags.color,
			})
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return ghierrors.New(ghierrors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&r.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&r.flags.noPager, "no-pager", false, MsgFlagNoPager)
	flags.StringVar(&r.flags.color, "color", "", MsgFlagColor)
	flags.StringVar(&r.flags.user, "user", "", MsgFlagUser)
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{ID: "records", Title: "Records:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Misc:"})

	rootCmd.AddCommand(newShowCmd(r))
	rootCmd.AddCommand(newListCmd(r))
	rootCmd.AddCommand(newDiffCmd(r))
	rootCmd.AddCommand(newEditorCmd(r))
	rootCmd.AddCommand(newConfigCmd(r))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd, r.settings.console)

	return rootCmd
}

// installTopics replaces the help command with one that also shows the
// embedded help topics, rendered for the console
func installTopics(root *cobra.Command, console *terminal.Console) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
		return
	}

	width, color := console.Columns(), console.Profile() != termenv.Ascii
	if _, err := topics.Install(root, sub, topics.Options{
		Renderer: topics.NewGlamourRenderer(width, color),
	}); err != nil {
		log.Debug().Err(err).Msg("Failed to install help topics")
	}
}

// Execute runs the command line and returns the process exit code: 0 on
// success, including a pager quit before output ended, and 1 on errors,
// which are reported on stderr
func Execute(ctx context.Context, args []string, stderr io.Writer, opts ...Option) int {
	defer logging.Close()

	rootCmd := NewRootCmd(append([]Option{WithStderr(stderr)}, opts...)...)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(stderr, err)
		return 1
	}
	return 0
}

// GenerateCompletion writes the completion script for shell
func GenerateCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unknown shell %q, supported shells: bash, zsh, fish, powershell", shell)
	}
}
