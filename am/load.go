package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/uniprompt/errors"
)

// ConfigFileName is the project config file discovered by walking up
// the directory tree from the working directory.
const ConfigFileName = "uniprompt.toml"

// Load reads the tool configuration: defaults, then the nearest project
// uniprompt.toml, then UNIPROMPT_* environment variables on top.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("UNIPROMPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_editor", "")
	v.SetDefault("allow_commands", false)
	v.SetDefault("command_timeout_seconds", 5)
	v.SetDefault("vars_file", "")
	v.SetDefault("strict", false)
	v.SetDefault("env_variables", false)
	v.SetDefault("log_json", false)
}

// findProjectConfig searches for uniprompt.toml by walking up the
// directory tree from the working directory. Returns the first hit, or
// empty string when none exists.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
