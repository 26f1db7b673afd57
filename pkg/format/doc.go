// Package format renders issue tracker records as terminal text.
//
// A Renderer composes the lower layers: style for colors, layout for
// truncation and wrapping (which in turn highlights Markdown bodies). The
// multi-line records (issues, milestones, comments, events and the editor
// messages) are laid out by embedded text/template files; listings and
// statistics are built directly.
//
// Every formatter returns plain strings. Nothing is written until the caller
// hands the result to a pager session or to Renderer.Println, which also
// highlights @mentions.
package format
