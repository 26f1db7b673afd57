package format

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"
	"time"

	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/layout"
	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/style"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// None is printed for an empty listing
const None = "None."

var mention = regexp.MustCompile(`(?m)(^|\s)@(\w[\w-]*)`)

// Renderer formats tracker records as terminal text
type Renderer struct {
	theme     *style.Theme
	layout    *layout.Layout
	palette   *style.Palette
	templates *template.Template
	user      string
	now       func() time.Time
}

// Option configures a Renderer
type Option func(*Renderer)

// WithUser sets the login of the person running the program. Their name is
// shown as "you" and their mentions are highlighted.
func WithUser(login string) Option {
	return func(r *Renderer) {
		r.user = login
	}
}

// WithClock replaces the source of the current time
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithPalette replaces the theme's palette
func WithPalette(p *style.Palette) Option {
	return func(r *Renderer) {
		if p != nil {
			r.palette = p
		}
	}
}

// New creates a Renderer
func New(theme *style.Theme, lay *layout.Layout, opts ...Option) (*Renderer, error) {
	log := logging.GetLogger("format.Renderer")

	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, ghierrors.Wrap(err, ghierrors.ErrTemplate, "failed to parse templates")
	}

	r := &Renderer{
		theme:     theme,
		layout:    lay,
		palette:   theme.Palette,
		templates: tmpl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.palette == nil {
		r.palette = style.DefaultPalette()
	}

	log.Debug().
		Str("user", r.user).
		Bool("colorize", theme.Colorize()).
		Msg("Renderer created")

	return r, nil
}

func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", ghierrors.Wrapf(err, ghierrors.ErrTemplate, "failed to execute template %s", name)
	}
	return buf.String(), nil
}

// Columns returns the width output is laid out for
func (r *Renderer) Columns() int {
	return r.layout.Columns()
}

func (r *Renderer) width(width int) int {
	if width <= 0 {
		return r.Columns()
	}
	return width
}

func (r *Renderer) color(name string) string {
	return r.palette.Color(name)
}

// Println writes lines to w, highlighting @mentions
func (r *Renderer) Println(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, r.Mentions(line)); err != nil {
			return err
		}
	}
	return nil
}

// Mentions makes every @login bold, and colors the current user's
func (r *Renderer) Mentions(text string) string {
	return mention.ReplaceAllStringFunc(text, func(m string) string {
		sub := mention.FindStringSubmatch(m)
		lead, login := sub[1], sub[2]
		styled := "@" + login
		if r.user != "" && login == r.user {
			styled = r.theme.Fg(r.color("mention"), styled)
		}
		return lead + r.theme.Bright(styled)
	})
}

// Username returns "you" for the current user and the login otherwise
func (r *Renderer) Username(login string) string {
	if r.user != "" && login == r.user {
		return "you"
	}
	return login
}

// Number formats an issue number for a listing
func (r *Renderer) Number(n string) string {
	if r.theme.Colorize() {
		return r.theme.Bright(n) + ":"
	}
	return n + " "
}

// Tag formats a short tag: padded when colored, bracketed when not
func (r *Renderer) Tag(tag string) string {
	if r.theme.Colorize() {
		return " " + tag + " "
	}
	return "[" + tag + "]"
}

// State colors text with the color of an issue state
func (r *Renderer) State(state, text string, background bool) string {
	color := r.palette.State(state)
	if background {
		return r.theme.Bg(color, text)
	}
	return r.theme.Fg(color, text)
}

// StateTag is the state as a tag on the state's background color
func (r *Renderer) StateTag(state string) string {
	return r.State(state, r.Tag(state), true)
}

// EventType colors an event name
func (r *Renderer) EventType(event string) string {
	return r.theme.Fg(r.palette.Event(event), event)
}

// CountWithPlural formats "1 commit", "2 commits"
func (r *Renderer) CountWithPlural(count int, term string) string {
	return fmt.Sprintf("%d %s", count, plural(count, term))
}

func plural(count int, term string) string {
	if count == 1 {
		return term
	}
	return term + "s"
}

// Date describes how long ago t was, or how far ahead it is: "3 days ago",
// "1 hour from now". Within a day the largest of hours, minutes and seconds
// is used. Without suffix only the magnitude is returned.
func (r *Renderer) Date(t time.Time, suffix bool) string {
	interval := r.now().Sub(t)
	magnitude := interval
	if magnitude < 0 {
		magnitude = -magnitude
	}

	var text string
	if days := int(magnitude / (24 * time.Hour)); days > 0 {
		text = r.CountWithPlural(days, "day")
	} else {
		seconds := int(magnitude / time.Second)
		hours, minutes := seconds/3600, seconds%3600/60
		switch {
		case hours > 0:
			text = r.CountWithPlural(hours, "hour")
		case minutes > 0:
			text = r.CountWithPlural(minutes, "minute")
		default:
			text = r.CountWithPlural(seconds%60, "second")
		}
	}

	if !suffix {
		return text
	}
	if interval < 0 {
		return text + " from now"
	}
	return text + " ago"
}

// noColor renders fn with styling suppressed
func (r *Renderer) noColor(fn func() string) string {
	return r.theme.NoColor(fn)
}

// ljust pads text with spaces to width display columns
func ljust(text string, width int) string {
	if pad := width - style.Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
