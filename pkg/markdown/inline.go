package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// trailingPunctuation is trimmed from the end of links and addresses
const trailingPunctuation = ".,;:!?)]}'\""

// inline scans a paragraph once, left to right. At each position the first
// rule that matches consumes its span: inline code, then strong/emphasis, then
// links and addresses. Code span content is never scanned again; emphasis
// content is scanned recursively so nested styles render nested.
func (h *Highlighter) inline(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '`':
			if end, ok := codeSpan(s, i); ok {
				content := s[i+1 : end]
				b.WriteString(h.theme.Inverse(" " + content + " "))
				i = end + 1
				continue
			}
			run := runLength(s, i, '`')
			b.WriteString(s[i : i+run])
			i += run
			continue

		case c == '*' || c == '_':
			if n, end, ok := emphasis(s, i); ok {
				delim := s[i : i+n]
				content := h.inline(s[i+n : end])
				fn := h.theme.Underline
				if n == 2 {
					fn = h.theme.Bright
				}
				b.WriteString(styled(fn, delim+content+delim))
				i = end + n
				continue
			}
			run := runLength(s, i, c)
			b.WriteString(s[i : i+run])
			i += run
			continue

		case atTokenStart(s, i):
			if end, lead, trail, ok := link(s, i); ok {
				target := s[i+lead : end-trail]
				b.WriteString(h.theme.Fg(h.accent, s[i:i+lead]+h.theme.Underline(target)+s[end-trail:end]))
				i = end
				continue
			}
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// codeSpan reports the index of the closing backtick of a single-backtick
// code span opening at i. Content is non-empty and stays on one line.
func codeSpan(s string, i int) (int, bool) {
	if i+1 >= len(s) || s[i+1] == '`' {
		return 0, false
	}
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return 0, false
		case '`':
			if j+1 < len(s) && s[j+1] == '`' {
				return 0, false
			}
			return j, true
		}
	}
	return 0, false
}

// emphasis matches **x**, __x__, *x* or _x_ opening at i. It returns the
// delimiter length and the index where the closing delimiter starts.
//
// The opening delimiter must follow the start of text or whitespace and the
// closing one must precede whitespace or the end of text. The content starts
// and ends with a word character and never contains the delimiter character,
// so markers inside words and unmatched markers stay literal.
func emphasis(s string, i int) (n, end int, ok bool) {
	c := s[i]
	if i > 0 && !isSpaceBefore(s, i) {
		return 0, 0, false
	}
	n = runLength(s, i, c)
	if n > 2 {
		return 0, 0, false
	}
	start := i + n
	closing := strings.IndexByte(s[start:], c)
	if closing <= 0 {
		return 0, 0, false
	}
	end = start + closing
	content := s[start:end]
	if strings.Contains(content, "\n\n") || runLength(s, end, c) != n {
		return 0, 0, false
	}
	if !isWordRune(firstRune(content)) || !isWordRune(lastRune(content)) {
		return 0, 0, false
	}
	if crossesCodeSpan(s, start, end) {
		return 0, 0, false
	}
	after := end + n
	if after < len(s) {
		r, _ := utf8.DecodeRuneInString(s[after:])
		if !unicode.IsSpace(r) {
			return 0, 0, false
		}
	}
	return n, end, true
}

// crossesCodeSpan reports whether a code span opening inside [start, end)
// closes at or after end
func crossesCodeSpan(s string, start, end int) bool {
	for p := start; p < end; p++ {
		if s[p] != '`' {
			continue
		}
		closing, ok := codeSpan(s, p)
		if !ok {
			p += runLength(s, p, '`') - 1
			continue
		}
		if closing >= end {
			return true
		}
		p = closing
	}
	return false
}

// link matches an http(s) URL or an email-like token starting at i,
// optionally wrapped in angle brackets. lead and trail are the widths of the
// brackets included in [i, end).
func link(s string, i int) (end, lead, trail int, ok bool) {
	j := i
	if s[j] == '<' {
		lead = 1
		j++
	}
	k := j
	for k < len(s) {
		r, size := utf8.DecodeRuneInString(s[k:])
		if unicode.IsSpace(r) || r == '>' || r == '<' || r == '`' {
			break
		}
		k += size
	}
	token := strings.TrimRight(s[j:k], trailingPunctuation)
	if !isURL(token) && !isEmail(token) {
		return 0, 0, 0, false
	}
	end = j + len(token)
	if lead == 1 && end == k && k < len(s) && s[k] == '>' {
		trail = 1
		end++
	}
	if lead == 1 && trail == 0 {
		// an unclosed bracket is not part of the link
		return 0, 0, 0, false
	}
	return end, lead, trail, true
}

func isURL(token string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(token, scheme) && len(token) > len(scheme) {
			return true
		}
	}
	return false
}

func isEmail(token string) bool {
	local, domain, found := strings.Cut(token, "@")
	return found && local != "" && domain != "" && !strings.Contains(domain, "@")
}

func atTokenStart(s string, i int) bool {
	return i == 0 || isSpaceBefore(s, i) || s[i-1] == '('
}

func isSpaceBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsSpace(r)
}

func runLength(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
