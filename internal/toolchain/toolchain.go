// Package toolchain verifies that the runtime interpreter is resolvable and
// recent enough before any dependency work begins.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MissingError indicates the required interpreter is not usable. There is no
// remediation for a missing toolchain.
type MissingError struct {
	Interpreter string
	Reason      string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("toolchain missing: %s (%s)", e.Interpreter, e.Reason)
}

// Checker locates the interpreter and reads its version. Both steps are
// injectable for tests.
type Checker struct {
	LookPath func(name string) (string, error)
	Version  func(ctx context.Context, path string) (string, error)
}

// New returns a Checker backed by the real execution path.
func New() Checker {
	return Checker{
		LookPath: exec.LookPath,
		Version:  runVersion,
	}
}

// Check verifies that interpreter resolves on the execution path and that
// its reported version satisfies the minimum constraint.
func (c Checker) Check(ctx context.Context, interpreter, minVersion string) error {
	path, err := c.LookPath(interpreter)
	if err != nil {
		return &MissingError{Interpreter: interpreter, Reason: "not found on PATH"}
	}

	out, err := c.Version(ctx, path)
	if err != nil {
		return &MissingError{Interpreter: interpreter, Reason: fmt.Sprintf("version query failed: %v", err)}
	}

	version, err := parseVersion(out)
	if err != nil {
		return &MissingError{Interpreter: interpreter, Reason: err.Error()}
	}

	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return &MissingError{Interpreter: interpreter, Reason: fmt.Sprintf("invalid minimum version %q: %v", minVersion, err)}
	}

	if !constraint.Check(version) {
		return &MissingError{
			Interpreter: interpreter,
			Reason:      fmt.Sprintf("version %s is older than required %s", version, minVersion),
		}
	}

	return nil
}

// parseVersion extracts a semantic version from `interpreter --version`
// output such as "Python 3.10.2".
func parseVersion(out string) (*semver.Version, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty version output")
	}

	raw := fields[len(fields)-1]
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("unrecognized version output %q", strings.TrimSpace(out))
	}
	return version, nil
}

func runVersion(ctx context.Context, path string) (string, error) {
	// Older interpreters print the version banner on stderr.
	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
