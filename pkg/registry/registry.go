package registry

import (
	"strings"

	"github.com/arthur-debert/deplink/pkg/config"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/types"
)

// Registry resolves instance names to hosts.
type Registry interface {
	// Resolve returns the host descriptor of the named instance.
	Resolve(name string) (types.Host, error)
	// Names lists the configured instances, sorted.
	Names() []string
}

type configRegistry struct {
	instances map[string]config.Instance
	names     []string
}

// New creates a Registry backed by cfg.
func New(cfg *config.Config) Registry {
	return &configRegistry{
		instances: cfg.Instances,
		names:     cfg.InstanceNames(),
	}
}

func (r *configRegistry) Resolve(name string) (types.Host, error) {
	inst, ok := r.instances[name]
	if !ok {
		return types.Host{}, errors.Newf(errors.ErrInstanceNotFound,
			"instance %q is not configured (known: %s)", name, strings.Join(r.names, ", ")).
			WithDetail("instance", name)
	}

	if strings.TrimSpace(inst.Hostname) == "" {
		return types.Host{}, errors.Newf(errors.ErrConfigInvalid,
			"instance %q has no hostname", name).WithDetail("instance", name)
	}
	if inst.Port < 1 || inst.Port > 65535 {
		return types.Host{}, errors.Newf(errors.ErrConfigInvalid,
			"instance %q has invalid port %d", name, inst.Port).WithDetail("instance", name)
	}
	if strings.TrimSpace(inst.DeployPath) == "" {
		return types.Host{}, errors.Newf(errors.ErrConfigInvalid,
			"instance %q has no deploy_path", name).WithDetail("instance", name)
	}

	return types.Host{
		Instance:   name,
		Hostname:   inst.Hostname,
		Port:       inst.Port,
		User:       inst.User,
		DeployPath: inst.DeployPath,
		Local:      inst.Local,
	}, nil
}

func (r *configRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
