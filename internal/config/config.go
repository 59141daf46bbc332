// Package config loads the deployment environment file and the collaborator
// manifest for the bootstrapper.
package config

import (
	"strconv"
	"time"
)

// Configuration keys the bootstrapper reads.
const (
	KeyServiceEndpoint   = "SERVICE_ENDPOINT"
	KeySourceControlBase = "SOURCE_CONTROL_BASE"
	KeyInterpreter       = "INTERPRETER"
	KeyConnectTimeout    = "CONNECT_TIMEOUT_SECONDS"
	KeyMinVersion        = "MIN_INTERPRETER_VERSION"
)

// Defaults for the optional keys.
const (
	DefaultInterpreter    = "python3"
	DefaultConnectTimeout = 5 * time.Second
	DefaultMinVersion     = "3.5.0"
)

// RequiredKeys must be present in the environment file. Validation happens at
// load time, before any dependency work begins.
var RequiredKeys = []string{
	KeyServiceEndpoint,
	KeySourceControlBase,
}

// Config is the immutable key/value environment loaded once at startup.
// Checks receive it explicitly; it is never exported into the ambient
// process environment of the bootstrapper itself.
type Config struct {
	values map[string]string
}

// Get returns the value for key, or the empty string when absent.
func (c Config) Get(key string) string {
	return c.values[key]
}

// ServiceEndpoint returns the host:port of the dependent service.
func (c Config) ServiceEndpoint() string {
	return c.values[KeyServiceEndpoint]
}

// SourceControlBase returns the git remote base used to fetch local
// dependencies.
func (c Config) SourceControlBase() string {
	return c.values[KeySourceControlBase]
}

// Interpreter returns the configured runtime interpreter name.
func (c Config) Interpreter() string {
	if v, ok := c.values[KeyInterpreter]; ok && v != "" {
		return v
	}
	return DefaultInterpreter
}

// MinInterpreterVersion returns the minimum accepted interpreter version.
func (c Config) MinInterpreterVersion() string {
	if v, ok := c.values[KeyMinVersion]; ok && v != "" {
		return v
	}
	return DefaultMinVersion
}

// ConnectTimeout returns the connectivity probe timeout.
func (c Config) ConnectTimeout() time.Duration {
	v, ok := c.values[KeyConnectTimeout]
	if !ok || v == "" {
		return DefaultConnectTimeout
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return DefaultConnectTimeout
	}
	return time.Duration(secs) * time.Second
}

// Environ renders the configuration as KEY=VALUE pairs, suitable for
// appending to the environment of launched collaborator processes.
func (c Config) Environ() []string {
	environ := make([]string, 0, len(c.values))
	for k, v := range c.values {
		environ = append(environ, k+"="+v)
	}
	return environ
}

// Len returns the number of loaded keys.
func (c Config) Len() int {
	return len(c.values)
}
