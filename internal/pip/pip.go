// Package pip adapts the Python package tooling (pip and git) behind the
// dependency manager interface.
package pip

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/liftoff-dev/liftoff/internal/deps"
)

// Client shells out to the interpreter's pip module and to git. It satisfies
// deps.Manager.
type Client struct {
	Interpreter string
	RemoteBase  string

	// run executes a command and returns its combined output. Injectable
	// for tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New returns a Client for the given interpreter and source-control base.
func New(interpreter, remoteBase string) *Client {
	return &Client{
		Interpreter: interpreter,
		RemoteBase:  strings.TrimSuffix(remoteBase, "/"),
		run:         runCommand,
	}
}

// Installed captures the registry package snapshot from pip's freeze-format
// listing. The snapshot is taken once per run.
func (c *Client) Installed(ctx context.Context) (deps.InstalledSet, error) {
	out, err := c.run(ctx, c.Interpreter, "-m", "pip", "list", "--format=freeze")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}
	return ParseFreeze(string(out)), nil
}

// Fetch clones a local dependency from its remote source into destPath.
func (c *Client) Fetch(ctx context.Context, name, destPath string) error {
	remote := fmt.Sprintf("%s/%s.git", c.RemoteBase, name)
	if out, err := c.run(ctx, "git", "clone", remote, destPath); err != nil {
		return fmt.Errorf("git clone %s failed: %w: %s", remote, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// InstallPath installs a dependency from a local directory.
func (c *Client) InstallPath(ctx context.Context, path string) error {
	if out, err := c.run(ctx, c.Interpreter, "-m", "pip", "install", path); err != nil {
		return fmt.Errorf("pip install %s failed: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// InstallName installs a registry package by name.
func (c *Client) InstallName(ctx context.Context, name string) error {
	if out, err := c.run(ctx, c.Interpreter, "-m", "pip", "install", name); err != nil {
		return fmt.Errorf("pip install %s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ParseFreeze extracts package names from freeze-format output, one
// "name==version" entry per line. Editable installs and malformed lines are
// skipped.
func ParseFreeze(out string) deps.InstalledSet {
	set := make(deps.InstalledSet)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-e ") || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, found := strings.Cut(line, "==")
		if !found || name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
