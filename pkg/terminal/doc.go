// Package terminal describes the output terminal: whether it is interactive,
// how wide it is, how many colors it supports, and which writer output
// currently flows into.
//
// A Console is the single owner of the output stream. While a pager session
// is active the Console writer is redirected into the pager's stdin; the
// original stream is restored when the session ends. Width is re-queried on
// every call because the terminal can be resized between calls.
package terminal
