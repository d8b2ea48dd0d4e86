package topics

// Renderer turns the raw content of a topic file into terminal output.
// ext is the file extension including the dot (".md", ".txt").
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer prints topics exactly as written.
type PlainRenderer struct{}

// Render returns content unchanged.
func (PlainRenderer) Render(content, _ string) string {
	return content
}

// isMarkdown reports whether ext names a markdown topic.
func isMarkdown(ext string) bool {
	return ext == ".md" || ext == ".markdown"
}
