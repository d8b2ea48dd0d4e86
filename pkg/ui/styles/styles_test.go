// pkg/ui/styles/styles_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Embedded styles.yaml
// PURPOSE: Test the style registry

package styles_test

import (
	"testing"

	"github.com/arthur-debert/deplink/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	for _, name := range []string{
		styles.Error, styles.Warning, styles.Success, styles.Muted,
		styles.Info, styles.Header, styles.Bold, styles.FilePath,
	} {
		_, ok := styles.StyleRegistry[name]
		assert.True(t, ok, "style %s should be registered", name)
	}
	assert.True(t, styles.GetStyle(styles.Error).GetBold())
	assert.True(t, styles.GetStyle(styles.Header).GetUnderline())
}

func TestGetStyle_Unknown(t *testing.T) {
	assert.Equal(t, "text", styles.GetStyle("DoesNotExist").Render("text"))
}

func TestLoadStylesFromData(t *testing.T) {
	saved := styles.StyleRegistry
	t.Cleanup(func() { styles.StyleRegistry = saved })

	require.NoError(t, styles.LoadStylesFromData([]byte(`
colors:
  c: {light: "#000000", dark: "#ffffff"}
styles:
  Only: {italic: true, foreground: c}
`)))
	assert.Len(t, styles.StyleRegistry, 1)
	assert.True(t, styles.GetStyle("Only").GetItalic())

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}
