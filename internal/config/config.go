// Package config loads the command-line configuration. Values are layered,
// highest precedence first: flags, SNIPPET_ environment variables, the YAML
// config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/spicery/snippet-tokenizer/pkg/grammar"
	"github.com/spicery/snippet-tokenizer/pkg/render"
	"github.com/spicery/snippet-tokenizer/pkg/theme"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SNIPPET_"

// Default values.
const (
	DefaultTheme  = "light"
	DefaultFormat = "ansi"
	DefaultJobs   = 4
)

// DefaultConfigFiles are looked for in the working directory when no
// config file is given explicitly.
var DefaultConfigFiles = []string{".snippet-tokenizer.yaml", ".snippet-tokenizer.yml"}

// Config holds the resolved command-line configuration.
type Config struct {
	Lang         string        `koanf:"lang"`     // Language identifier; empty means detect from file extension
	Theme        string        `koanf:"theme"`    // Theme name for styled output
	Format       string        `koanf:"format"`   // Output format of the highlight command
	Grammars     string        `koanf:"grammars"` // Optional YAML grammars file
	Output       string        `koanf:"output"`   // Output file; empty means stdout
	Verbose      bool          `koanf:"verbose"`
	MatchTimeout time.Duration `koanf:"match_timeout"`
	Jobs         int           `koanf:"jobs"` // Files tokenized concurrently

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `koanf:"-"`
}

// Load resolves the configuration. cfgFile names an explicit config file;
// when empty the DefaultConfigFiles are tried. Only flags that were set on
// the command line override the other layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"lang":          "",
		"theme":         DefaultTheme,
		"format":        DefaultFormat,
		"grammars":      "",
		"output":        "",
		"verbose":       false,
		"match_timeout": grammar.DefaultMatchTimeout.String(),
		"jobs":          DefaultJobs,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: SNIPPET_MATCH_TIMEOUT -> match_timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = configFileUsed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the config file to read, or "" for none.
// An explicit file must exist.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, name := range DefaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := theme.ByName(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.MatchTimeout < 0 {
		errs = append(errs, fmt.Errorf("match_timeout must not be negative, got %s", c.MatchTimeout))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Registry builds the grammar registry the configuration asks for: the
// built-in grammars compiled with the configured match timeout, plus the
// grammars file if one is set.
func (c *Config) Registry() (*grammar.Registry, error) {
	opts := []grammar.CompileOption{grammar.WithMatchTimeout(c.MatchTimeout)}

	var registry *grammar.Registry
	if c.MatchTimeout == grammar.DefaultMatchTimeout {
		registry = grammar.Builtin()
	} else {
		r, err := grammar.NewBuiltinRegistry(opts...)
		if err != nil {
			return nil, err
		}
		registry = r
	}

	if c.Grammars == "" {
		return registry, nil
	}
	f, err := grammar.LoadGrammarFile(c.Grammars)
	if err != nil {
		return nil, err
	}
	registry, err = grammar.ApplyGrammarFile(registry, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("error applying grammars file '%s': %w", c.Grammars, err)
	}
	return registry, nil
}
