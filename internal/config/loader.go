package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadError indicates the environment file is absent, malformed, or missing
// a required key.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load environment file %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads the key/value environment file at path and validates that every
// required key is present. The returned Config is immutable for the rest of
// the run.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, &LoadError{Path: path, Cause: err}
	}

	values := make(map[string]string)
	for _, key := range v.AllKeys() {
		// Environment file keys are conventionally uppercase; viper
		// lowercases them internally.
		values[strings.ToUpper(key)] = v.GetString(key)
	}

	for _, required := range RequiredKeys {
		if values[required] == "" {
			return Config{}, &LoadError{
				Path:  path,
				Cause: fmt.Errorf("required key %s is not set", required),
			}
		}
	}

	return Config{values: values}, nil
}

// NewConfig builds a Config from an in-memory map. Useful for tests that
// exercise checks without touching the filesystem.
func NewConfig(values map[string]string) Config {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Config{values: copied}
}
