package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "DEPLINK_"

// projectFiles are looked up in the working directory, first match wins.
var projectFiles = []string{
	"deplink.toml", ".deplink.toml",
	"deplink.yaml", ".deplink.yaml",
	"deplink.yml", ".deplink.yml",
}

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist when set.
	ConfigFile string
	// WorkDir is searched for a project config and a .env file. Defaults to ".".
	WorkDir string
	// UserConfigDir overrides the XDG config directory for deplink.
	UserConfigDir string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
	// SkipDotEnv ignores the .env file in WorkDir.
	SkipDotEnv bool
}

func (o LoadOptions) workDir() string {
	if o.WorkDir == "" {
		return "."
	}
	return o.WorkDir
}

func (o LoadOptions) userConfigPath() string {
	dir := o.UserConfigDir
	if dir == "" {
		dir = filepath.Join(xdg.ConfigHome, "deplink")
	}
	return filepath.Join(dir, "deplink.toml")
}

// Load merges all configuration layers and returns the validated result.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if !opts.SkipUserConfig {
		if err := loadIfExists(k, opts.userConfigPath()); err != nil {
			return nil, err
		}
	}

	for _, name := range projectFiles {
		path := filepath.Join(opts.workDir(), name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		break
	}

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	if !opts.SkipDotEnv {
		dotEnv := filepath.Join(opts.workDir(), ".env")
		if _, err := os.Stat(dotEnv); err == nil {
			if err := godotenv.Load(dotEnv); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", dotEnv)
			}
			logger.Debug().Str("path", dotEnv).Msg("Loaded .env")
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	raw := k.Raw()
	applyInstanceDefaults(raw)

	merged := koanf.New(".")
	if err := merged.Load(confmap.Provider(raw, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load merged config")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := merged.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to decode configuration")
	}

	postProcess(&cfg)
	cfg.raw = raw

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("instances", len(cfg.Instances)).
		Str("top", cfg.TopInstance).
		Str("local", cfg.LocalInstance).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate checks the settings every command depends on. Individual
// instances are checked when they are resolved.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TopInstance) == "" {
		return errors.New(errors.ErrConfigInvalid, "top_instance must not be empty")
	}
	if strings.TrimSpace(c.LocalInstance) == "" {
		return errors.New(errors.ErrConfigInvalid, "local_instance must not be empty")
	}
	if c.TopInstance == c.LocalInstance {
		return errors.Newf(errors.ErrConfigInvalid,
			"top_instance and local_instance must differ (both %q)", c.TopInstance)
	}
	if c.SSH.ConnectTimeout < 0 {
		return errors.New(errors.ErrConfigInvalid, "ssh.connect_timeout must not be negative")
	}
	return nil
}

func loadIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// envKey maps DEPLINK_INSTANCES__LIVE__DEPLOY_PATH to instances.live.deploy_path.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// applyInstanceDefaults fills every instance table with the keys of
// instance_defaults it does not set itself.
func applyInstanceDefaults(raw map[string]interface{}) {
	defaults, _ := raw["instance_defaults"].(map[string]interface{})
	instances, _ := raw["instances"].(map[string]interface{})
	for name, v := range instances {
		inst, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		for key, val := range defaults {
			if _, set := inst[key]; !set {
				inst[key] = val
			}
		}
		instances[name] = inst
	}
}

func postProcess(cfg *Config) {
	for name, inst := range cfg.Instances {
		if inst.Local && inst.Hostname == "" {
			inst.Hostname = "localhost"
		}
		cfg.Instances[name] = inst
	}
}
