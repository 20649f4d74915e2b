package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is read when present and no --config flag is given
	DefaultConfigFile = "/etc/autostop/autostop_config.env"

	// EnvPrefix prefixes every environment variable
	EnvPrefix = "AUTOSTOP"
)

// Raw is unvalidated key-value configuration as gathered from file,
// environment and flags
type Raw map[string]string

// NewViper returns a viper instance with defaults and environment bindings
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	// Prefixed name first, then the un-prefixed name used by the original env file
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), env)
	}

	return v
}

// ReadFile merges a config file into v. The format is derived from the file
// extension: .env for KEY=VALUE files, .yaml/.yml, .json or .toml. A missing
// file is only an error when required is set.
func ReadFile(v *viper.Viper, path string, required bool) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	// Legacy keys rank just below their current name from the same file
	for legacy, key := range legacyKeys {
		if v.InConfig(legacy) && !v.InConfig(key) {
			v.SetDefault(key, v.Get(legacy))
		}
	}

	return nil
}

// RawFrom extracts every known key from v. Keys without any value are left
// out so the validator can report them as missing.
func RawFrom(v *viper.Viper) Raw {
	raw := make(Raw, len(Keys))
	for _, key := range Keys {
		value := v.Get(key)
		if value == nil {
			continue
		}
		raw[key] = stringify(value)
	}
	return raw
}

// Load reads the config file and returns the validated configuration
func Load(v *viper.Viper, path string, required bool) (*Config, error) {
	if err := ReadFile(v, path, required); err != nil {
		return nil, err
	}
	return Validate(RawFrom(v))
}

// stringify flattens list values from YAML files into comma separated strings
func stringify(value interface{}) string {
	switch val := value.(type) {
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, cast.ToString(item))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(val, ",")
	case []int:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, cast.ToString(item))
		}
		return strings.Join(parts, ",")
	default:
		return strings.TrimSpace(cast.ToString(val))
	}
}
