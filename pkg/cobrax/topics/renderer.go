package topics

// Renderer formats a topic for the terminal
type Renderer interface {
	// Render takes a topic's raw content and its file extension
	Render(content string, format string) string
}

// PlainRenderer returns topics as written
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
