// pkg/types/types_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test host identity and working directory helpers

package types_test

import (
	"testing"

	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSameMachine(t *testing.T) {
	base := types.Host{Instance: "staging", Hostname: "web1.example.com", Port: 22}

	tests := []struct {
		name  string
		other types.Host
		want  bool
	}{
		{"same hostname and port", types.Host{Instance: "live", Hostname: "web1.example.com", Port: 22}, true},
		{"different port", types.Host{Hostname: "web1.example.com", Port: 2222}, false},
		{"different hostname", types.Host{Hostname: "web2.example.com", Port: 22}, false},
		{"textual comparison only", types.Host{Hostname: "WEB1.example.com", Port: 22}, false},
		{"user is ignored", types.Host{Hostname: "web1.example.com", Port: 22, User: "other"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, types.SameMachine(base, tt.other))
			assert.Equal(t, tt.want, types.SameMachine(tt.other, base))
		})
	}
}

func TestHost_String(t *testing.T) {
	assert.Equal(t, "deploy@web1:22", types.Host{Hostname: "web1", Port: 22, User: "deploy"}.String())
	assert.Equal(t, "web1:2222", types.Host{Hostname: "web1", Port: 2222}.String())
	assert.Equal(t, "[::1]:22", types.Host{Hostname: "::1", Port: 22}.Address())
}

func TestWorkDir_Path(t *testing.T) {
	wd := types.WorkDir{Root: "/var/www/live/", Kind: types.WorkDirRelease}
	assert.Equal(t, "/var/www/live/release", wd.Path())

	wd.Kind = types.WorkDirCurrent
	assert.Equal(t, "/var/www/live/current", wd.Path())
}
