// Package config loads Quill's CLI configuration from quill.yaml,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/quill/pkg/adapter"
	"github.com/leapstack-labs/quill/pkg/dialect"
)

// Defaults.
const (
	DefaultTarget = "default"
	DefaultOutput = "table"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// Config is the resolved CLI configuration.
type Config struct {
	// Target names the entry in Targets to connect to.
	Target string `koanf:"target"`

	// Targets maps target names to connection settings.
	Targets map[string]adapter.Config `koanf:"targets"`

	// TablePrefix is prepended to every physical table name.
	TablePrefix string `koanf:"table_prefix"`

	// Database names the logical database for cross-statement checks.
	Database string `koanf:"database"`

	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`

	// ProjectRoot is the directory the config file was found in.
	ProjectRoot string `koanf:"-"`
}

// CurrentTarget resolves the selected target's connection settings.
func (c *Config) CurrentTarget() (adapter.Config, error) {
	name := c.Target
	if name == "" {
		name = DefaultTarget
	}
	t, ok := c.Targets[name]
	if !ok {
		available := make([]string, 0, len(c.Targets))
		for k := range c.Targets {
			available = append(available, k)
		}
		return adapter.Config{}, fmt.Errorf("target %q not found in config (available: %v)", name, available)
	}
	return t, nil
}

var configFileUsed string

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

func configExistsIn(dir string) bool {
	for _, name := range []string{"quill.yaml", "quill.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// findProjectRootUpward searches upward from startDir for a quill config
// file. Returns empty string if not found within maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target":  DefaultTarget,
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, else search upward from CWD.
	projectRoot := ""
	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			if root := findProjectRootUpward(cwd); root != "" {
				projectRoot = root
				for _, name := range []string{"quill.yaml", "quill.yml"} {
					candidate := filepath.Join(root, name)
					if _, err := os.Stat(candidate); err == nil {
						cfgFile = candidate
						break
					}
				}
			}
		}
	} else if abs, err := filepath.Abs(cfgFile); err == nil {
		projectRoot = filepath.Dir(abs)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	}

	// 3. Environment variables: QUILL_TABLE_PREFIX -> table_prefix.
	if err := k.Load(env.Provider("QUILL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "QUILL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	// Expand ${VAR} references in sensitive target fields.
	for name, t := range cfg.Targets {
		t.DSN = expandEnvVars(t.DSN)
		t.Host = expandEnvVars(t.Host)
		t.User = expandEnvVars(t.User)
		t.Password = expandEnvVars(t.Password)
		t.Database = expandEnvVars(t.Database)
		cfg.Targets[name] = t
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Output {
	case "", "table", "json", "csv", "md", "markdown":
	default:
		return fmt.Errorf("invalid output format %q (want table, json, csv or md)", c.Output)
	}
	for name, t := range c.Targets {
		if t.Type == "" {
			return fmt.Errorf("target %q: type is required", name)
		}
		if _, ok := dialect.Get(t.Type); !ok {
			return fmt.Errorf("target %q: unknown dialect %q (available: %v)", name, t.Type, dialect.List())
		}
	}
	return nil
}

// expandEnvVars expands ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}
