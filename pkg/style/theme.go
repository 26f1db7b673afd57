// Package style turns text into terminal-styled text.
//
// Every Theme method is a pure string transformation: the input is wrapped in
// an escape sequence and a reset. Nested styles survive because every reset
// inside the wrapped text is followed by the outer sequence again. Inside a
// NoColor scope, or on a terminal without color support, text comes back
// unchanged.
package style

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Reset is the SGR reset sequence
const Reset = termenv.CSI + termenv.ResetSeq + "m"

// ansiNames maps symbolic color names to ANSI palette indexes
var ansiNames = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"gray":          "8",
	"grey":          "8",
	"brightblack":   "8",
	"brightred":     "9",
	"brightgreen":   "10",
	"brightyellow":  "11",
	"brightblue":    "12",
	"brightmagenta": "13",
	"brightcyan":    "14",
	"brightwhite":   "15",
}

// ProfileSource supplies the color profile to style for. terminal.Console
// satisfies it, so a profile override on the console is picked up at once.
type ProfileSource interface {
	Profile() termenv.Profile
}

type fixedProfile termenv.Profile

func (p fixedProfile) Profile() termenv.Profile {
	return termenv.Profile(p)
}

// Theme applies styles for a terminal
type Theme struct {
	source     ProfileSource
	suppressed atomic.Bool
	Palette    *Palette
}

// NewTheme creates a theme that styles for the given source's profile
func NewTheme(source ProfileSource) *Theme {
	return &Theme{
		source:  source,
		Palette: DefaultPalette(),
	}
}

// NewThemeForProfile creates a theme with a fixed color profile
func NewThemeForProfile(profile termenv.Profile) *Theme {
	return NewTheme(fixedProfile(profile))
}

// Profile returns the color profile styles are rendered for
func (t *Theme) Profile() termenv.Profile {
	return t.source.Profile()
}

// Colorize reports whether styling calls currently produce escapes
func (t *Theme) Colorize() bool {
	return !t.suppressed.Load() && t.source.Profile() != termenv.Ascii
}

// NoColor evaluates fn with all styling suppressed. Scopes nest; on return the
// previous suppression state is restored, whatever it was.
func (t *Theme) NoColor(fn func() string) string {
	previous := t.suppressed.Swap(true)
	defer t.suppressed.Store(previous)
	return fn()
}

// Fg colors the text's foreground
func (t *Theme) Fg(color, text string) string {
	return t.wrap(t.colorSequence(color, false), text)
}

// Bg colors the text's background
func (t *Theme) Bg(color, text string) string {
	return t.wrap(t.colorSequence(color, true), text)
}

// Bright renders the text bold
func (t *Theme) Bright(text string) string {
	return t.wrap(termenv.BoldSeq, text)
}

// Underline underlines the text
func (t *Theme) Underline(text string) string {
	return t.wrap(termenv.UnderlineSeq, text)
}

// Inverse swaps foreground and background
func (t *Theme) Inverse(text string) string {
	return t.wrap(termenv.ReverseSeq, text)
}

// Strip removes all escape sequences from text
func Strip(text string) string {
	return ansi.Strip(text)
}

// Width returns the display width of possibly styled text
func Width(text string) int {
	return lipgloss.Width(text)
}

func (t *Theme) wrap(seq, text string) string {
	if seq == "" || text == "" || !t.Colorize() {
		return text
	}
	open := termenv.CSI + seq + "m"
	// a reset ending text also ends this style
	text = strings.TrimSuffix(text, Reset)
	return open + strings.ReplaceAll(text, Reset, Reset+open) + Reset
}

// colorSequence resolves a symbolic name or hex triplet to an SGR parameter
// string, degraded to what the profile supports. Unknown colors yield "".
func (t *Theme) colorSequence(color string, background bool) string {
	spec := normalizeColor(color)
	if spec == "" {
		return ""
	}
	c := t.source.Profile().Color(spec)
	if c == nil {
		return ""
	}
	return c.Sequence(background)
}

func normalizeColor(color string) string {
	name := strings.ToLower(strings.TrimSpace(color))
	name = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(name)
	if name == "" {
		return ""
	}
	if index, ok := ansiNames[name]; ok {
		return index
	}
	hex := strings.TrimPrefix(name, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || strings.Trim(hex, "0123456789abcdef") != "" {
		return ""
	}
	return "#" + hex
}
