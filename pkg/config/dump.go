package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Dump renders the merged configuration tree as "toml" or "yaml".
func Dump(cfg *Config, format string) ([]byte, error) {
	tree := cfg.raw
	if tree == nil {
		tree = map[string]interface{}{}
	}
	switch format {
	case "", "toml":
		return toml.Marshal(tree)
	case "yaml", "yml":
		return yaml.Marshal(tree)
	default:
		return nil, fmt.Errorf("unknown format %q (want toml or yaml)", format)
	}
}
