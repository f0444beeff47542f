// Package config resolves CLI-wide settings from defaults, an optional
// YAML config file, WINNOW_-prefixed environment variables, and bound
// command flags, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings holds the knobs shared across winnow commands.
type Settings struct {
	// Params is a filter parameter YAML file; empty uses the built-in
	// table.
	Params string `mapstructure:"params" yaml:"params"`
	// Registry is a language registry YAML file; empty uses the built-in
	// registry.
	Registry string `mapstructure:"registry" yaml:"registry"`
	// LexiconDir holds stopwords/ and badwords/ word lists.
	LexiconDir string `mapstructure:"lexicon_dir" yaml:"lexicon_dir"`
	// ModelDir holds per-language n-gram models in ARPA format.
	ModelDir string `mapstructure:"model_dir" yaml:"model_dir"`
	// OutDir is where kept documents land, one subdirectory per language.
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`
	// Manifest is the SQLite run-history database; empty disables
	// recording.
	Manifest string `mapstructure:"manifest" yaml:"manifest"`
	// Procs bounds worker concurrency; zero means one worker per CPU.
	Procs int `mapstructure:"procs" yaml:"procs"`
	// BatchSize is the number of documents dispatched per wave.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
	// Units names the volume measure for kept text: tokens, words, or
	// characters.
	Units string `mapstructure:"units" yaml:"units"`
}

// Default returns the settings used when nothing else is configured.
func Default() Settings {
	return Settings{
		OutDir:    "filtered",
		Manifest:  "winnow.db",
		BatchSize: 256,
		Units:     "tokens",
	}
}

// flagKeys maps config keys to the command flags that may override them.
var flagKeys = map[string]string{
	"params":      "params",
	"registry":    "registry",
	"lexicon_dir": "lexicons",
	"model_dir":   "models",
	"out_dir":     "out",
	"manifest":    "manifest",
	"procs":       "procs",
	"batch_size":  "batch-size",
	"units":       "units",
}

// Load resolves settings. cfgFile names an explicit config file; when
// empty, ./winnow.yaml and ~/.winnow/winnow.yaml are tried and may be
// absent. flags, when non-nil, binds matching command flags at the top
// of the precedence order.
func Load(cfgFile string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("params", defaults.Params)
	v.SetDefault("registry", defaults.Registry)
	v.SetDefault("lexicon_dir", defaults.LexiconDir)
	v.SetDefault("model_dir", defaults.ModelDir)
	v.SetDefault("out_dir", defaults.OutDir)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("procs", defaults.Procs)
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("units", defaults.Units)

	v.SetEnvPrefix("WINNOW")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("winnow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.winnow")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return s, nil
}

// WriteDefault writes a starter config file to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}

	header := []byte(`# winnow configuration
# Values here are overridden by WINNOW_* environment variables and
# command flags.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
