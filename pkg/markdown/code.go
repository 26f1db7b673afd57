package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/arthur-debert/ghi/pkg/logging"
	"github.com/arthur-debert/ghi/pkg/style"
	"github.com/muesli/termenv"
)

// formatterFor picks the chroma terminal formatter matching the profile
func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	default:
		return "terminal16"
	}
}

// code renders the body of a fenced block. The fences are dropped and every
// line keeps the block's indentation. Unknown languages, and output without
// color, stay plain.
func (h *Highlighter) code(lines []string, lang, margin string) []string {
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = strings.TrimPrefix(l, margin)
	}

	if lang == "" || !h.theme.Colorize() || lexers.Get(lang) == nil {
		return indentLines(plain, margin)
	}

	var buf strings.Builder
	err := quick.Highlight(&buf, strings.Join(plain, "\n"), lang, formatterFor(h.theme.Profile()), h.codeStyle)
	if err != nil {
		logger := logging.GetLogger("markdown")
		logger.Debug().Err(err).Str("lang", lang).Msg("Code highlighting failed, rendering plain")
		return indentLines(plain, margin)
	}

	highlighted := strings.Split(buf.String(), "\n")
	// a trailing newline added by the lexer leaves a line of bare escapes
	for len(highlighted) > len(plain) {
		last := highlighted[len(highlighted)-1]
		highlighted = highlighted[:len(highlighted)-1]
		highlighted[len(highlighted)-1] += last
	}
	if len(highlighted) != len(plain) || style.Strip(strings.Join(highlighted, "\n")) != strings.Join(plain, "\n") {
		return indentLines(plain, margin)
	}
	return indentLines(highlighted, margin)
}

func indentLines(lines []string, margin string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			out[i] = l
			continue
		}
		out[i] = margin + l
	}
	return out
}
