package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root. Keys ending in "/" become empty
// directories, everything else a file with the given content.
func WriteTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	for rel, content := range entries {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

// AssertSymlinkTo fails unless p is a symlink whose target is want.
func AssertSymlinkTo(t *testing.T, p, want string) {
	t.Helper()
	info, err := os.Lstat(p)
	require.NoError(t, err)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", p)
	got, err := os.Readlink(p)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
