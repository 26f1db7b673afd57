package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/arthur-debert/ghi/pkg/config"
	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/format"
	"github.com/arthur-debert/ghi/pkg/layout"
	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/markdown"
	"github.com/arthur-debert/ghi/pkg/pager"
	"github.com/arthur-debert/ghi/pkg/spinner"
	"github.com/arthur-debert/ghi/pkg/style"
	"github.com/arthur-debert/ghi/pkg/terminal"
)

// Option configures the root command
type Option func(*settings)

type settings struct {
	console    *terminal.Console
	stderr     io.Writer
	configOpts []config.Option
	pagerOpts  []pager.Option
	now        func() time.Time
}

// WithConsole writes output to console instead of standard output
func WithConsole(console *terminal.Console) Option {
	return func(s *settings) {
		s.console = console
	}
}

// WithStderr sends log output to w instead of standard error
func WithStderr(w io.Writer) Option {
	return func(s *settings) {
		s.stderr = w
	}
}

// WithConfigOptions passes options to config.Load
func WithConfigOptions(opts ...config.Option) Option {
	return func(s *settings) {
		s.configOpts = append(s.configOpts, opts...)
	}
}

// WithPagerOptions passes options to pager.New
func WithPagerOptions(opts ...pager.Option) Option {
	return func(s *settings) {
		s.pagerOpts = append(s.pagerOpts, opts...)
	}
}

// WithClock fixes the time dates are shown relative to
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// globalFlags are the root command's persistent flags
type globalFlags struct {
	verbosity int
	noPager   bool
	color     string
	user      string
}

// overrides are the configuration values set on the command line
func (f globalFlags) overrides() map[string]interface{} {
	values := make(map[string]interface{})
	if f.noPager {
		values["ghi.paginate"] = false
	}
	if f.color != "" {
		values["ghi.color"] = f.color
	}
	if f.user != "" {
		values["ghi.user"] = f.user
	}
	return values
}

// app is everything a command needs to render records
type app struct {
	cfg      *config.Config
	console  *terminal.Console
	renderer *format.Renderer
	pager    *pager.Pager
	spinner  *spinner.Spinner
}

// runner builds the app the first time a command needs it
type runner struct {
	settings settings
	flags    globalFlags
	app      *app
}

func (r *runner) get() (*app, error) {
	if r.app != nil {
		return r.app, nil
	}
	a, err := newApp(r.settings, r.flags)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

func newApp(s settings, flags globalFlags) (*app, error) {
	log := logging.GetLogger("cli")
	defer logging.LogOperationStart(log, "setup")()

	cfg, err := config.Load(append(s.configOpts, config.WithOverrides(flags.overrides()))...)
	if err != nil {
		return nil, err
	}

	console := s.console
	if console == nil {
		console = terminal.New(os.Stdout)
	}
	if err := applyColor(console, cfg.Ghi.Color); err != nil {
		return nil, err
	}
	console.Paginate = cfg.Ghi.Paginate

	palette := style.DefaultPalette()
	if cfg.Ghi.Palette != "" {
		palette, err = style.LoadPaletteFile(cfg.Ghi.Palette)
		if err != nil {
			return nil, ghierrors.Wrap(err, ghierrors.ErrConfigLoad, "failed to load palette").
				WithDetail("path", cfg.Ghi.Palette)
		}
	}

	theme := style.NewTheme(console)
	highlighter := markdown.New(theme,
		markdown.WithAccent(cfg.Ghi.Highlight.Accent),
		markdown.WithCodeStyle(cfg.Ghi.Highlight.Style),
	)

	renderOpts := []format.Option{format.WithUser(cfg.Ghi.User), format.WithPalette(palette)}
	if s.now != nil {
		renderOpts = append(renderOpts, format.WithClock(s.now))
	}
	renderer, err := format.New(theme, layout.New(console, highlighter), renderOpts...)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("color", cfg.Ghi.Color).
		Bool("paginate", console.Paginate).
		Str("user", cfg.Ghi.User).
		Msg("Renderer ready")

	return &app{
		cfg:      cfg,
		console:  console,
		renderer: renderer,
		pager:    pager.New(console, cfg, s.pagerOpts...),
		spinner:  spinner.New(console),
	}, nil
}

// applyColor forces or removes color. auto keeps what the console detected.
func applyColor(console *terminal.Console, color string) error {
	switch color {
	case config.ColorAuto, "":
	case config.ColorNever:
		console.SetProfile(termenv.Ascii)
	case config.ColorAlways:
		if console.Profile() == termenv.Ascii {
			console.SetProfile(termenv.ANSI256)
		}
	default:
		return ghierrors.Newf(ghierrors.ErrInvalidInput, MsgErrColor, color)
	}
	return nil
}

// page writes lines through the pager a screenful at a time, pausing for
// ghi.throttle between screens. Without a pager session the header is
// written as the first line.
func (a *app) page(ctx context.Context, header string, lines []string) error {
	if header != "" && !a.pager.Applies() {
		lines = append([]string{header}, lines...)
		header = ""
	}

	chunk := max(a.console.Rows(), 1)
	return a.pager.Page(ctx, header, a.cfg.Ghi.Throttle, func(w io.Writer) (bool, error) {
		n := min(chunk, len(lines))
		if err := a.renderer.Println(w, lines[:n]...); err != nil {
			return false, ghierrors.Wrap(err, ghierrors.ErrPagerWrite, "failed to write output")
		}
		lines = lines[n:]
		return len(lines) == 0, nil
	})
}

// print writes text as is, outside any pager session
func (a *app) print(text string) error {
	if _, err := io.WriteString(a.console.Writer(), text); err != nil {
		return ghierrors.Wrap(err, ghierrors.ErrPagerWrite, "failed to write output")
	}
	return nil
}

// splitLines splits a formatted block into the lines Println writes back.
// A block ending in a newline does not get an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
