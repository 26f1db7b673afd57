package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/ghi/pkg/markdown"
	"github.com/arthur-debert/ghi/pkg/style"
	"github.com/arthur-debert/ghi/pkg/terminal"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func consoleWithColumns(columns int, interactive bool) *terminal.Console {
	return terminal.NewWriter(&bytes.Buffer{},
		terminal.WithInteractive(interactive),
		terminal.WithSizeFunc(func(int) (int, int, error) {
			return columns, 24, nil
		}),
	)
}

func TestTruncate(t *testing.T) {
	l := New(consoleWithColumns(20, true), nil)

	tests := []struct {
		name     string
		text     string
		reserved int
		want     string
	}{
		{"breaks at whitespace", "The quick brown fox jumps over", 10, "The quick..."},
		{"fits unchanged", "short", 10, "short"},
		{"exact fit unchanged", "0123456789", 10, "0123456789"},
		{"minimum space", "aaa bbb ccc", 30, "aaa..."},
		{"long first word kept whole", "abcdefghijklmnop rest", 10, "abcdefghijklmnop..."},
		{"only the first line", "first\nsecond line that is long", 10, "first..."},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Truncate(tt.text, tt.reserved))
		})
	}
}

func TestTruncateNotPaginated(t *testing.T) {
	long := "The quick brown fox jumps over the lazy dog"

	notTTY := New(consoleWithColumns(20, false), nil)
	assert.Equal(t, long, notTTY.Truncate(long, 10))

	disabled := consoleWithColumns(20, true)
	disabled.Paginate = false
	assert.Equal(t, long, New(disabled, nil).Truncate(long, 10))
}

func TestTruncateLengthBound(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog",
		"a b c d e f g h i j k l m n o p q r s t u v w x y z",
		"lorem ipsum dolor sit amet consectetur",
		"one",
		"two words",
	}

	for _, columns := range []int{5, 12, 20, 40, 80} {
		for _, reserved := range []int{0, 3, 10, 50} {
			l := New(consoleWithColumns(columns, true), nil)
			space := columns - reserved
			if space < MinSpace {
				space = MinSpace
			}
			for _, s := range inputs {
				got := l.Truncate(s, reserved)
				assert.LessOrEqual(t, len(got), space+len(Ellipsis), "columns=%d reserved=%d %q", columns, reserved, s)
				if len(s) <= space {
					assert.Equal(t, s, got)
				} else {
					assert.True(t, strings.HasSuffix(got, Ellipsis))
				}
			}
		}
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		level    int
		maxWidth int
		want     string
	}{
		{"empty", "", 4, 80, ""},
		{"short line", "hello", 4, 80, "    hello"},
		{"wraps at whitespace", "one two three four", 2, 10, "  one two\n  three\n  four"},
		{"long word on its own line", "a verylongword b", 0, 6, "a\nverylongword\nb"},
		{"carriage returns dropped", "a\r\nb", 1, 80, " a\n b"},
		{"trailing blanks stripped", "a  \t\nb", 0, 80, "a\nb"},
		{"blank runs collapse", "a\n\n\n\n\nb", 2, 80, "  a\n  \n  b"},
		{"single blank line kept", "a\n\nb", 0, 80, "a\n\nb"},
		{"trailing whitespace trimmed", "a\n\n", 2, 80, "  a"},
		{"width never below one", "ab cd", 4, 2, "    ab\n    cd"},
		{"inner spacing kept", "a  b", 0, 80, "a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indent(tt.text, tt.level, tt.maxWidth))
		})
	}
}

func TestIndentLinesFitWidth(t *testing.T) {
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
	for _, width := range []int{20, 33, 60} {
		for _, line := range strings.Split(Indent(text, 4, width), "\n") {
			assert.LessOrEqual(t, runewidth.StringWidth(line), width-1)
			assert.True(t, strings.HasPrefix(line, "    "))
		}
	}
}

func TestLayoutIndentHighlights(t *testing.T) {
	theme := style.NewThemeForProfile(termenv.ANSI)
	l := New(consoleWithColumns(80, true), markdown.New(theme))

	out := l.Indent("some **bold** words", 4)
	assert.Equal(t, "    some \x1b[1m**bold**\x1b[0m words", out)

	plain := New(consoleWithColumns(80, true), nil)
	assert.Equal(t, "    some **bold** words", plain.Indent("some **bold** words", 4))
}

func TestLayoutIndentUsesTerminalWidth(t *testing.T) {
	l := New(consoleWithColumns(12, true), nil)
	assert.Equal(t, "  aaaa bbbb\n  cccc", l.Indent("aaaa bbbb cccc", 2))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"abc"}, Wrap("abc", 5))
	assert.Equal(t, []string{""}, Wrap("", 5))
	assert.Equal(t, []string{"ab", "cd"}, Wrap("ab cd", 3))
	assert.Equal(t, []string{"  abcdefgh", "xy"}, Wrap("  abcdefgh xy", 3))
	assert.Equal(t, []string{"日本", "語"}, Wrap("日本 語", 4))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 33, New(consoleWithColumns(33, false), nil).Columns())
	assert.Equal(t, terminal.DefaultColumns, New(terminal.NewWriter(&bytes.Buffer{}), nil).Columns())
}
