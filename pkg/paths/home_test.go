// pkg/paths/home_test.go
// TEST TYPE: Unit
// DEPENDENCIES: Fake executor
// PURPOSE: Test home directory expansion on local and remote hosts

package paths

import (
	"context"
	"testing"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/testutil"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	liveHost  = types.Host{Instance: "live", Hostname: "media.example.com", Port: 22, DeployPath: "~/www/app"}
	localHost = types.Host{Instance: "local", Hostname: "localhost", Port: 22, DeployPath: "~/app", Local: true}
)

func TestHomeExpander_Expand(t *testing.T) {
	ctx := context.Background()

	t.Run("absolute path is unchanged and not probed", func(t *testing.T) {
		exec := testutil.NewFakeExecutor()
		got, err := NewHomeExpander(exec).Expand(ctx, liveHost, "/var/www/app")
		require.NoError(t, err)
		assert.Equal(t, "/var/www/app", got)
		assert.Empty(t, exec.Calls())
	})

	t.Run("remote host is probed", func(t *testing.T) {
		exec := testutil.NewFakeExecutor().WithHome("live", "/home/deploy")
		got, err := NewHomeExpander(exec).Expand(ctx, liveHost, "~/www/app")
		require.NoError(t, err)
		assert.Equal(t, "/home/deploy/www/app", got)
		require.Len(t, exec.Calls(), 1)
		assert.Equal(t, "cd ~ && pwd", exec.Calls()[0].Script)
	})

	t.Run("bare tilde", func(t *testing.T) {
		exec := testutil.NewFakeExecutor().WithHome("live", "/home/deploy")
		got, err := NewHomeExpander(exec).Expand(ctx, liveHost, "~")
		require.NoError(t, err)
		assert.Equal(t, "/home/deploy", got)
	})

	t.Run("banner lines before the answer are ignored", func(t *testing.T) {
		exec := testutil.NewFakeExecutor().On("cd ~", testutil.Response{
			Lines: []string{"Welcome to media", "/home/deploy", ""},
		})
		got, err := NewHomeExpander(exec).Expand(ctx, liveHost, "~/www")
		require.NoError(t, err)
		assert.Equal(t, "/home/deploy/www", got)
	})

	t.Run("local host uses the process environment", func(t *testing.T) {
		exec := testutil.NewFakeExecutor()
		h := NewHomeExpander(exec)
		h.expandLocal = func(p string) (string, error) { return "/Users/dev" + p[1:], nil }

		got, err := h.Expand(ctx, localHost, "~/app")
		require.NoError(t, err)
		assert.Equal(t, "/Users/dev/app", got)
		assert.Empty(t, exec.Calls())
	})

	t.Run("user-specific home is rejected", func(t *testing.T) {
		_, err := NewHomeExpander(testutil.NewFakeExecutor()).Expand(ctx, liveHost, "~deploy/www")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	})

	t.Run("probe failure", func(t *testing.T) {
		exec := testutil.NewFakeExecutor().On("cd ~", testutil.Response{ExitStatus: 255})
		_, err := NewHomeExpander(exec).Expand(ctx, liveHost, "~/www")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteExec))
	})

	t.Run("garbage answer", func(t *testing.T) {
		exec := testutil.NewFakeExecutor().On("cd ~", testutil.Response{Lines: []string{"not a path"}})
		_, err := NewHomeExpander(exec).Expand(ctx, liveHost, "~/www")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteExec))
	})
}
