// pkg/registry/registry_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: config
// PURPOSE: Test instance resolution and validation of resolved hosts

package registry_test

import (
	"testing"

	"github.com/arthur-debert/deplink/pkg/config"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/registry"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	return &config.Config{
		TopInstance:   "live",
		LocalInstance: "local",
		Instances: map[string]config.Instance{
			"live":    {Hostname: "web1", Port: 22, User: "deploy", DeployPath: "~/live"},
			"staging": {Hostname: "web1", Port: 22, DeployPath: "/srv/staging"},
			"noport":  {Hostname: "web1", Port: 0, DeployPath: "/srv"},
			"nohost":  {Port: 22, DeployPath: "/srv"},
			"nopath":  {Hostname: "web1", Port: 22},
		},
	}
}

func TestResolve(t *testing.T) {
	reg := registry.New(newConfig())

	host, err := reg.Resolve("live")
	require.NoError(t, err)
	assert.Equal(t, types.Host{
		Instance:   "live",
		Hostname:   "web1",
		Port:       22,
		User:       "deploy",
		DeployPath: "~/live",
	}, host)
}

func TestResolve_Errors(t *testing.T) {
	reg := registry.New(newConfig())

	tests := []struct {
		name string
		code errors.ErrorCode
	}{
		{"missing", errors.ErrInstanceNotFound},
		{"noport", errors.ErrConfigInvalid},
		{"nohost", errors.ErrConfigInvalid},
		{"nopath", errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Resolve(tt.name)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.name, errors.GetErrorDetails(err)["instance"])
		})
	}
}

func TestNames(t *testing.T) {
	reg := registry.New(newConfig())
	assert.Equal(t, []string{"live", "nohost", "nopath", "noport", "staging"}, reg.Names())
}
