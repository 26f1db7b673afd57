package topics

import (
	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/ghi/pkg/logging"
)

// GlamourRenderer renders Markdown topics with glamour
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to
	// a style sheet; "auto" or empty detects it from the terminal
	Style string
	// Width wraps rendered text; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer creates a renderer. Without color the "notty" style is
// used so no escape sequences are written.
func NewGlamourRenderer(width int, color bool) *GlamourRenderer {
	style := "auto"
	if !color {
		style = "notty"
	}
	return &GlamourRenderer{Style: style, Width: width}
}

// Render converts Markdown topics. Other formats, and any rendering
// failure, give the content back unchanged.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	logger := logging.GetLogger("topics")
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("glamour unavailable, showing raw topic")
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("failed to render topic")
		return content
	}
	return rendered
}
