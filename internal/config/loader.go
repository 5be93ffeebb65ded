package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the configuration from .declscope.yml (searched in the current
// directory, then the home directory), applies DECLSCOPE_ environment
// overrides, and merges the result over the defaults. A missing config file
// is not an error; the defaults stand.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".declscope")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("DECLSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers defaults with viper so env overrides work even for
// keys the config file omits.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("source.root", cfg.Source.Root)
	v.SetDefault("source.ignore", cfg.Source.Ignore)
	v.SetDefault("search.fuzzy_limit", cfg.Search.FuzzyLimit)
	v.SetDefault("log.level", cfg.Log.Level)
}
