package terminal

import "github.com/charmbracelet/x/ansi"

// Cursor control sequences used by the pager and spinner.
const (
	HideCursor = ansi.HideCursor
	ShowCursor = ansi.ShowCursor
)

// CursorUp moves the cursor up n lines.
func CursorUp(n int) string {
	return ansi.CursorUp(n)
}

// CursorColumn moves the cursor to column n (1-based; 0 behaves like 1).
func CursorColumn(n int) string {
	return ansi.CursorHorizontalAbsolute(n)
}
