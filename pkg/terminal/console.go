package terminal

import (
	"errors"
	"io"
	"os"

	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultColumns is used when the terminal size cannot be determined.
	DefaultColumns = 80
	// DefaultRows is used when the terminal size cannot be determined.
	DefaultRows = 24
	// MinColumns is the narrowest width ever reported.
	MinColumns = 5
)

// ErrAlreadyPaging is returned by Redirect while a redirect is in effect.
var ErrAlreadyPaging = errors.New("output is already redirected")

// ColorDepth is the color capability of the output terminal
type ColorDepth int

const (
	DepthNone ColorDepth = iota
	Depth16
	Depth256
	DepthTrueColor
)

// String returns the string representation of the depth
func (d ColorDepth) String() string {
	switch d {
	case DepthNone:
		return "none"
	case Depth16:
		return "16"
	case Depth256:
		return "256"
	case DepthTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// DepthFromProfile maps a termenv profile onto a ColorDepth
func DepthFromProfile(p termenv.Profile) ColorDepth {
	switch p {
	case termenv.TrueColor:
		return DepthTrueColor
	case termenv.ANSI256:
		return Depth256
	case termenv.ANSI:
		return Depth16
	default:
		return DepthNone
	}
}

// Capability is a snapshot of what the terminal can do right now
type Capability struct {
	Interactive bool
	Columns     int
	Rows        int
	Depth       ColorDepth
}

// SizeFunc reports the width and height of the terminal behind fd
type SizeFunc func(fd int) (width, height int, err error)

// Console owns the process output stream
type Console struct {
	stdout  io.Writer
	out     io.Writer
	fd      int
	tty     bool
	size    SizeFunc
	profile termenv.Profile

	// Paginate enables paging, truncation and the spinner on interactive
	// terminals. --no-pager clears it.
	Paginate bool

	paging bool
}

// Option configures a Console
type Option func(*Console)

// WithSizeFunc replaces the terminal size query
func WithSizeFunc(fn SizeFunc) Option {
	return func(c *Console) {
		c.size = fn
	}
}

// WithInteractive overrides terminal detection
func WithInteractive(interactive bool) Option {
	return func(c *Console) {
		c.tty = interactive
	}
}

// WithProfile overrides color profile detection
func WithProfile(profile termenv.Profile) Option {
	return func(c *Console) {
		c.profile = profile
	}
}

// New creates a Console for a file such as os.Stdout, detecting whether it
// is a terminal and what color profile it supports
func New(f *os.File, opts ...Option) *Console {
	fd := f.Fd()
	c := &Console{
		stdout:   f,
		out:      f,
		fd:       int(fd),
		tty:      isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		size:     term.GetSize,
		profile:  termenv.NewOutput(f).EnvColorProfile(),
		Paginate: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	logger := logging.GetLogger("terminal.Console")
	logger.Debug().
		Bool("interactive", c.tty).
		Str("depth", DepthFromProfile(c.profile).String()).
		Msg("Console created")

	return c
}

// NewWriter creates a non-interactive Console over an arbitrary writer.
// Options can make it look interactive, which is how tests drive it.
func NewWriter(w io.Writer, opts ...Option) *Console {
	c := &Console{
		stdout:   w,
		out:      w,
		fd:       -1,
		size:     noSize,
		profile:  termenv.Ascii,
		Paginate: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func noSize(int) (int, int, error) {
	return 0, 0, errors.New("not a terminal")
}

// Writer returns the writer output currently flows into
func (c *Console) Writer() io.Writer {
	return c.out
}

// Stdout returns the original output stream
func (c *Console) Stdout() io.Writer {
	return c.stdout
}

// Interactive reports whether the original output is a terminal
func (c *Console) Interactive() bool {
	return c.tty
}

// Paging reports whether output is currently redirected into a pager
func (c *Console) Paging() bool {
	return c.paging
}

// Paginated reports whether output is laid out for a human on a terminal:
// either a pager session is active, or the terminal is interactive and
// paging is enabled.
func (c *Console) Paginated() bool {
	return (c.tty && !c.paging && c.Paginate) || c.paging
}

// Redirect sends all output to w until restore is called. Only one redirect
// may be in effect at a time.
func (c *Console) Redirect(w io.Writer) (restore func(), err error) {
	if c.paging {
		return nil, ErrAlreadyPaging
	}
	c.out = w
	c.paging = true
	return func() {
		c.out = c.stdout
		c.paging = false
	}, nil
}

// Profile returns the color profile used for styling
func (c *Console) Profile() termenv.Profile {
	return c.profile
}

// SetProfile overrides the color profile (for --color=always|never)
func (c *Console) SetProfile(profile termenv.Profile) {
	c.profile = profile
}

// Columns returns the current terminal width. It falls back to 80 when the
// query fails or yields 0 and never reports fewer than 5 columns.
func (c *Console) Columns() int {
	width, _, err := c.size(c.fd)
	if err != nil || width <= 0 {
		return DefaultColumns
	}
	if width < MinColumns {
		return MinColumns
	}
	return width
}

// Rows returns the current terminal height, 24 when unknown
func (c *Console) Rows() int {
	_, height, err := c.size(c.fd)
	if err != nil || height <= 0 {
		return DefaultRows
	}
	return height
}

// Capability queries the terminal
func (c *Console) Capability() Capability {
	return Capability{
		Interactive: c.tty,
		Columns:     c.Columns(),
		Rows:        c.Rows(),
		Depth:       DepthFromProfile(c.profile),
	}
}
