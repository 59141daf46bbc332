package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Command names one collaborator executable and its arguments.
type Command struct {
	Name string   `yaml:"command"`
	Args []string `yaml:"args"`
}

// IsZero reports whether the command was left unset in the manifest.
func (c Command) IsZero() bool {
	return c.Name == ""
}

func (c Command) String() string {
	s := c.Name
	for _, arg := range c.Args {
		s += " " + arg
	}
	return s
}

// Actions holds the four dispatchable collaborator commands.
type Actions struct {
	CreateDB  Command `yaml:"create_db"`
	Test      Command `yaml:"test"`
	Shell     Command `yaml:"shell"`
	RunServer Command `yaml:"run_server"`
}

// Manifest declares the collaborator commands the bootstrapper may dispatch
// to, plus the optional advisory style checkers run after the test suite.
// Checker failures are reported but never fatal.
type Manifest struct {
	Actions  Actions   `yaml:"actions"`
	Checkers []Command `yaml:"checkers"`
}

// DefaultManifest returns the built-in collaborator commands used when no
// manifest file exists.
func DefaultManifest() Manifest {
	return Manifest{
		Actions: Actions{
			CreateDB:  Command{Name: DefaultInterpreter, Args: []string{"-c", "import db; db.init_db()"}},
			Test:      Command{Name: DefaultInterpreter, Args: []string{"-m", "pytest", "tests"}},
			Shell:     Command{Name: DefaultInterpreter, Args: []string{"-i"}},
			RunServer: Command{Name: DefaultInterpreter, Args: []string{"api.py"}},
		},
		Checkers: []Command{
			{Name: DefaultInterpreter, Args: []string{"-m", "pycodestyle", "--max-line-length=120", "."}},
			{Name: DefaultInterpreter, Args: []string{"-m", "pylint", "api"}},
		},
	}
}

// LoadManifest reads the collaborator manifest at path. An absent file yields
// the defaults; a present but malformed file is a load error. Actions left
// unset in the file fall back to their defaults individually.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return Manifest{}, &LoadError{Path: path, Cause: err}
	}

	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.DisallowUnknownField()); err != nil {
		return Manifest{}, &LoadError{Path: path, Cause: fmt.Errorf("malformed manifest: %w", err)}
	}

	defaults := DefaultManifest()
	if m.Actions.CreateDB.IsZero() {
		m.Actions.CreateDB = defaults.Actions.CreateDB
	}
	if m.Actions.Test.IsZero() {
		m.Actions.Test = defaults.Actions.Test
	}
	if m.Actions.Shell.IsZero() {
		m.Actions.Shell = defaults.Actions.Shell
	}
	if m.Actions.RunServer.IsZero() {
		m.Actions.RunServer = defaults.Actions.RunServer
	}
	if m.Checkers == nil {
		m.Checkers = defaults.Checkers
	}

	return m, nil
}
