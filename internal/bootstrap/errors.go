package bootstrap

import (
	"errors"
	"fmt"

	"github.com/liftoff-dev/liftoff/internal/deps"
)

// ConnectivityRefusedError indicates the dependent service was unreachable
// and the operator declined to continue anyway.
type ConnectivityRefusedError struct {
	Endpoint string
	Cause    error
}

func (e *ConnectivityRefusedError) Error() string {
	return fmt.Sprintf("connectivity check refused for %s: %v", e.Endpoint, e.Cause)
}

func (e *ConnectivityRefusedError) Unwrap() error {
	return e.Cause
}

// Process exit codes.
const (
	ExitOK = 0
	// ExitFailure covers configuration, toolchain, dependency and
	// connectivity failures, including fatal declined prompts.
	ExitFailure = 1
	// ExitUnsafeInstall is reserved for an attempted install outside an
	// isolated environment.
	ExitUnsafeInstall = 2
)

// ExitCode maps a bootstrap error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var unsafeInstall *deps.UnsafeInstallError
	if errors.As(err, &unsafeInstall) {
		return ExitUnsafeInstall
	}
	return ExitFailure
}
