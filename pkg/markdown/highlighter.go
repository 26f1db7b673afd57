// Package markdown highlights the small Markdown subset found in issue and
// comment bodies: headers, strong and emphasis, list and quote markers, links,
// inline code and fenced code blocks.
//
// Text is tokenized once. Fenced blocks are carved out first, then each
// paragraph is classified line by line and its inline spans are scanned left
// to right, so nothing an earlier rule styled is ever matched again. Syntax
// that does not match a rule is left as literal text.
package markdown

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/ghi/pkg/style"
)

// DefaultAccent colors list markers and links
const DefaultAccent = "268bd2"

// DefaultCodeStyle is the chroma style used for fenced code
const DefaultCodeStyle = "monokai"

var (
	atxHeader    = regexp.MustCompile(`^#{1,6} .+$`)
	setextRule   = regexp.MustCompile(`^[-=]+$`)
	listMarker   = regexp.MustCompile(`^(?:[*>-]|\d+\.) `)
	openingFence = regexp.MustCompile("^```\\s*(\\w*)$")
)

// Highlighter renders Markdown with a Theme
type Highlighter struct {
	theme     *style.Theme
	accent    string
	codeStyle string
}

// Option configures a Highlighter
type Option func(*Highlighter)

// WithAccent sets the color of list markers and links
func WithAccent(color string) Option {
	return func(h *Highlighter) {
		if color != "" {
			h.accent = color
		}
	}
}

// WithCodeStyle sets the chroma style for fenced code blocks
func WithCodeStyle(name string) Option {
	return func(h *Highlighter) {
		if name != "" {
			h.codeStyle = name
		}
	}
}

// New creates a Highlighter
func New(theme *style.Theme, opts ...Option) *Highlighter {
	h := &Highlighter{
		theme:     theme,
		accent:    DefaultAccent,
		codeStyle: DefaultCodeStyle,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// block is a run of lines that is either prose or a fenced code block
type block struct {
	lines []string
	code  bool
	lang  string
}

// Highlight styles text whose lines are indented by indent spaces. Rules that
// anchor at the start of a line (headers, markers, fences) only match at
// exactly that indentation.
func (h *Highlighter) Highlight(text string, indent int) string {
	if text == "" {
		return text
	}
	if indent < 0 {
		indent = 0
	}
	margin := strings.Repeat(" ", indent)

	var out []string
	for _, b := range splitBlocks(strings.Split(text, "\n"), margin) {
		if b.code {
			out = append(out, h.code(b.lines, b.lang, margin)...)
			continue
		}
		out = append(out, h.prose(b.lines, margin)...)
	}
	return strings.Join(out, "\n")
}

// splitBlocks separates fenced code blocks from prose. A fence without a
// matching close at the same indentation stays prose.
func splitBlocks(lines []string, margin string) []block {
	var blocks []block
	var prose []string

	flush := func() {
		if len(prose) > 0 {
			blocks = append(blocks, block{lines: prose})
			prose = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		lang, ok := fenceOpen(lines[i], margin)
		if !ok {
			prose = append(prose, lines[i])
			continue
		}
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if lines[j] == margin+"```" {
				end = j
				break
			}
		}
		if end <= i+1 {
			prose = append(prose, lines[i])
			continue
		}
		flush()
		blocks = append(blocks, block{lines: lines[i+1 : end], code: true, lang: lang})
		i = end
	}
	flush()
	return blocks
}

func fenceOpen(line, margin string) (string, bool) {
	if !strings.HasPrefix(line, margin) {
		return "", false
	}
	m := openingFence.FindStringSubmatch(line[len(margin):])
	if m == nil {
		return "", false
	}
	return m[1], true
}

// line is one prose line split into its styled prefix and its body
type line struct {
	prefix string
	body   string
	header bool
}

// prose highlights a run of non-code lines paragraph by paragraph. Emphasis
// may continue onto the next line of a paragraph but never past a blank line.
func (h *Highlighter) prose(lines []string, margin string) []string {
	out := make([]string, 0, len(lines))
	start := 0
	for i := 0; i <= len(lines); i++ {
		if i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			continue
		}
		out = append(out, h.paragraph(lines[start:i], margin)...)
		if i < len(lines) {
			out = append(out, lines[i])
		}
		start = i + 1
	}
	return out
}

func (h *Highlighter) paragraph(lines []string, margin string) []string {
	if len(lines) == 0 {
		return nil
	}
	parsed := classify(lines, margin)

	bodies := make([]string, len(parsed))
	for i, l := range parsed {
		bodies[i] = l.body
	}
	rendered := strings.Split(h.inline(strings.Join(bodies, "\n")), "\n")

	out := make([]string, len(parsed))
	for i, l := range parsed {
		body := rendered[i]
		if l.header {
			body = h.theme.Bright(body)
		}
		prefix := l.prefix
		if strings.TrimSpace(prefix) != "" {
			prefix = margin + h.theme.Fg(h.accent, prefix[len(margin):])
		}
		out[i] = prefix + body
	}
	return out
}

func classify(lines []string, margin string) []line {
	parsed := make([]line, len(lines))
	for i, raw := range lines {
		parsed[i] = line{body: raw}
		if !strings.HasPrefix(raw, margin) {
			continue
		}
		rest := raw[len(margin):]
		switch {
		case atxHeader.MatchString(rest):
			parsed[i] = line{prefix: margin, body: rest, header: true}
		case setextRule.MatchString(rest) && i > 0 && isSetextTitle(lines[i-1], margin):
			parsed[i] = line{prefix: margin, body: rest, header: true}
			parsed[i-1].header = true
		case listMarker.MatchString(rest):
			marker := listMarker.FindString(rest)
			parsed[i] = line{prefix: margin + marker, body: rest[len(marker):]}
		}
	}
	return parsed
}

// isSetextTitle reports whether raw can be underlined into a header. List
// items and quotes cannot.
func isSetextTitle(raw, margin string) bool {
	if !strings.HasPrefix(raw, margin) || len(raw) == len(margin) {
		return false
	}
	return !listMarker.MatchString(raw[len(margin):])
}

// styled applies fn to each line of text separately, so no escape sequence
// ever spans a newline and line prefixes stay unstyled.
func styled(fn func(string) string, text string) string {
	if !strings.Contains(text, "\n") {
		return fn(text)
	}
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = fn(p)
	}
	return strings.Join(parts, "\n")
}
