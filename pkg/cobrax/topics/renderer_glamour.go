package topics

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour style names understood by NewGlamourRenderer.
const (
	StyleAuto  = "auto"
	StyleNoTTY = "notty"
)

// GlamourRenderer renders markdown topics with glamour. Other topics pass
// through untouched, as does markdown glamour fails on.
type GlamourRenderer struct {
	style string
	width int

	once sync.Once
	term *glamour.TermRenderer
	err  error
}

// NewGlamourRenderer returns a renderer for the given glamour style.
// StyleAuto picks dark or light from the terminal background; StyleNoTTY
// renders without escape sequences for pipes. A width of 0 keeps glamour's
// default wrapping.
func NewGlamourRenderer(style string, width int) *GlamourRenderer {
	if style == "" {
		style = StyleAuto
	}
	return &GlamourRenderer{style: style, width: width}
}

// Render formats markdown content. The glamour renderer is built on first
// use and reused by every later topic.
func (r *GlamourRenderer) Render(content, ext string) string {
	if !isMarkdown(ext) {
		return content
	}
	r.once.Do(r.build)
	if r.err != nil {
		return content
	}
	out, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return out
}

func (r *GlamourRenderer) build() {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(r.style)}
	if r.style == StyleAuto {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	if r.width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.width))
	}
	r.term, r.err = glamour.NewTermRenderer(opts...)
}
