// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory fs (testing/fstest)
// PURPOSE: Test topic loading, lookup and the help command

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"safety.md":           {Data: []byte("# Safety\n\nRules")},
		"option-target.txt":   {Data: []byte("The target instance")},
		"nested/config.txxt":  {Data: []byte("Configuration Guide")},
		"ignore.json":         {Data: []byte("{}")},
		"nested/instances.md": {Data: []byte("# Instances")},
	}
}

func TestTopicManager_Load(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.Load())

		assert.Equal(t, []string{"instances", "option-target", "safety"}, tm.ListTopics())
		topic, ok := tm.GetTopic("safety")
		require.True(t, ok)
		assert.Equal(t, "# Safety\n\nRules", topic.Content)
		_, ok = tm.GetTopic("config")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Load())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic_FlagStyle(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.Load())

	for _, name := range []string{"--target", "-target", "target", "option-target"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-target", topic.Name)
	}
}

func TestTopicManager_PrintList(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.Load())

	var buf bytes.Buffer
	tm.PrintList(&buf, "deplink")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  instances\n  safety\n")
	assert.Contains(t, out, "Option topics:\n  --target\n")
	assert.Contains(t, out, "deplink topics <topic>")

	var empty bytes.Buffer
	New(fstest.MapFS{}).PrintList(&empty, "deplink")
	assert.Equal(t, "No help topics available.\n", empty.String())
}

func TestInitialize_HelpShowsTopic(t *testing.T) {
	root := &cobra.Command{Use: "deplink"}
	root.AddCommand(&cobra.Command{Use: "link", Run: func(*cobra.Command, []string) {}})
	require.NoError(t, Initialize(root, New(testFS())))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"help", "safety"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "# Safety\n\nRules", buf.String())

	buf.Reset()
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Available help topics:")
}

func TestGlamourRenderer_NonMarkdownPassesThrough(t *testing.T) {
	r := NewGlamourRenderer(StyleNoTTY, 0)
	assert.Equal(t, "# plain text", r.Render("# plain text", ".txt"))
}

func TestGlamourRenderer_Markdown(t *testing.T) {
	r := NewGlamourRenderer(StyleNoTTY, 40)

	out := r.Render("# Safety\n\nLinks into **live** need two confirmations.", ".md")
	assert.Contains(t, out, "Safety")
	assert.Contains(t, out, "confirmations")
	assert.NotEqual(t, "# Safety\n\nLinks into **live** need two confirmations.", out)

	// The glamour renderer is reused across topics.
	assert.Contains(t, r.Render("second topic", ".markdown"), "second topic")
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# Title\n", PlainRenderer{}.Render("# Title\n", ".md"))
}
