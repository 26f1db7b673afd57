// Package layout fits text to the terminal: truncation to the space left on
// a line, and greedy word wrapping with indentation.
package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/ghi/pkg/markdown"
	"github.com/arthur-debert/ghi/pkg/terminal"
	"github.com/mattn/go-runewidth"
)

const (
	// MinSpace is the least room Truncate ever leaves for text
	MinSpace = 5
	// Ellipsis marks truncated text
	Ellipsis = "..."
)

var (
	carriageReturns = regexp.MustCompile(`\r`)
	trailingBlanks  = regexp.MustCompile(`(?m)[\t ]+$`)
	blankLineRuns   = regexp.MustCompile(`\n{3,}`)
)

// Layout measures and shapes text for a console
type Layout struct {
	console     *terminal.Console
	highlighter *markdown.Highlighter
}

// New creates a Layout. highlighter may be nil, in which case indented text
// is returned without Markdown styling.
func New(console *terminal.Console, highlighter *markdown.Highlighter) *Layout {
	return &Layout{
		console:     console,
		highlighter: highlighter,
	}
}

// Columns returns the current terminal width
func (l *Layout) Columns() int {
	return l.console.Columns()
}

// Truncate shortens text to the columns left after reserved, breaking only at
// whitespace and marking the cut with an ellipsis. Output that is not laid
// out for a terminal is never truncated.
func (l *Layout) Truncate(text string, reserved int) string {
	if !l.console.Paginated() {
		return text
	}
	space := l.Columns() - reserved
	if space < MinSpace {
		space = MinSpace
	}
	return Truncate(text, space)
}

// Truncate fits text into space columns. Only the first line is considered.
// A first word wider than space is kept whole.
func Truncate(text string, space int) string {
	if runewidth.StringWidth(text) <= space {
		return text
	}
	first, _, _ := strings.Cut(text, "\n")

	var result string
	if cut := breakAt(first, space); cut >= 0 {
		result = first[:cut]
	} else {
		result = firstToken(first)
	}
	result = strings.TrimRightFunc(result, unicode.IsSpace)
	if result != text {
		result += Ellipsis
	}
	return result
}

// Indent wraps text to the terminal width and indents it by level spaces
func (l *Layout) Indent(text string, level int) string {
	return l.IndentWidth(text, level, l.Columns())
}

// IndentWidth normalizes text, wraps it to maxWidth columns including the
// indentation, indents every line by level spaces and highlights the result
// as Markdown.
func (l *Layout) IndentWidth(text string, level, maxWidth int) string {
	if level < 0 {
		level = 0
	}
	out := Indent(text, level, maxWidth)
	if l.highlighter == nil || out == "" {
		return out
	}
	return l.highlighter.Highlight(out, level)
}

// Indent is the plain-text part of Layout.IndentWidth. Runs of blank lines
// collapse to one, trailing blanks are removed and lines wrap at whitespace
// to maxWidth-level-1 columns. A word longer than that sits on its own line.
func Indent(text string, level, maxWidth int) string {
	if text == "" {
		return ""
	}
	text = carriageReturns.ReplaceAllString(text, "")
	text = trailingBlanks.ReplaceAllString(text, "")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")

	width := maxWidth - level - 1
	if width < 1 {
		width = 1
	}
	margin := strings.Repeat(" ", level)

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		for _, wrapped := range Wrap(paragraph, width) {
			lines = append(lines, margin+wrapped)
		}
	}
	return strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
}

// Wrap breaks a single line into lines of at most width columns. Breaks
// happen at a whitespace character, which is consumed; other spacing is kept
// as written.
func Wrap(line string, width int) []string {
	var lines []string
	for runewidth.StringWidth(line) > width {
		cut := breakAt(line, width)
		if cut < 0 {
			lead := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
			end := strings.IndexFunc(line[lead:], unicode.IsSpace)
			if end < 0 {
				break
			}
			cut = lead + end
		}
		lines = append(lines, line[:cut])
		_, size := utf8.DecodeRuneInString(line[cut:])
		line = line[cut+size:]
	}
	return append(lines, line)
}

// breakAt returns the byte offset of the last whitespace character that
// follows some visible text and ends a prefix at most width columns wide, or
// -1 when the first word alone is wider.
func breakAt(line string, width int) int {
	cut := -1
	used := 0
	seenText := false
	for i, r := range line {
		if unicode.IsSpace(r) {
			if used > width {
				break
			}
			if seenText {
				cut = i
			}
		} else {
			seenText = true
		}
		used += runewidth.RuneWidth(r)
	}
	if used <= width {
		return len(line)
	}
	return cut
}

func firstToken(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if end := strings.IndexFunc(trimmed, unicode.IsSpace); end >= 0 {
		return trimmed[:end]
	}
	return trimmed
}
