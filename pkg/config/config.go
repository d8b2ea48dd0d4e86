package config

import (
	"sort"
	"time"

	"github.com/arthur-debert/deplink/pkg/types"
)

// Config is the fully merged configuration for one invocation.
type Config struct {
	TopInstance      string              `koanf:"top_instance"`
	LocalInstance    string              `koanf:"local_instance"`
	InstanceDefaults Instance            `koanf:"instance_defaults"`
	Instances        map[string]Instance `koanf:"instances"`
	Rsync            Rsync               `koanf:"rsync"`
	SSH              SSH                 `koanf:"ssh"`

	// raw is the merged key tree, kept for Dump.
	raw map[string]interface{}
}

// Instance is one [instances.<name>] table.
type Instance struct {
	Hostname                     string `koanf:"hostname"`
	Port                         int    `koanf:"port"`
	User                         string `koanf:"user"`
	DeployPath                   string `koanf:"deploy_path"`
	Local                        bool   `koanf:"local"`
	AllowLink                    bool   `koanf:"allow_link"`
	AllowLinkWithoutConfirmation bool   `koanf:"allow_link_without_confirmation"`
}

// Rsync holds the opaque tuning passed to the dry-run comparison.
type Rsync struct {
	Flags    string   `koanf:"flags"`
	Options  string   `koanf:"options"`
	Includes []string `koanf:"includes"`
	Excludes []string `koanf:"excludes"`
	Filters  []string `koanf:"filters"`
}

// SSH configures the remote executor.
type SSH struct {
	KnownHosts            string        `koanf:"known_hosts"`
	IdentityFiles         []string      `koanf:"identity_files"`
	UseAgent              bool          `koanf:"use_agent"`
	InsecureIgnoreHostKey bool          `koanf:"insecure_ignore_host_key"`
	ConnectTimeout        time.Duration `koanf:"connect_timeout"`
}

// Policy returns the link policy of the named instance. Instances that are
// not configured get the instance defaults.
func (c *Config) Policy(name string) types.Policy {
	inst, ok := c.Instances[name]
	if !ok {
		inst = c.InstanceDefaults
	}
	return types.Policy{
		AllowLink:                    inst.AllowLink,
		AllowLinkWithoutConfirmation: inst.AllowLinkWithoutConfirmation,
	}
}

// InstanceNames returns the configured instance names, sorted.
func (c *Config) InstanceNames() []string {
	names := make([]string, 0, len(c.Instances))
	for name := range c.Instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
