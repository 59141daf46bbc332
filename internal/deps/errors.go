package deps

import "fmt"

// UnsatisfiedError indicates a declared dependency is absent and the
// operator declined remediation. Resolution aborts immediately.
type UnsatisfiedError struct {
	ID string
}

func (e *UnsatisfiedError) Error() string {
	return fmt.Sprintf("dependency unsatisfied: %s", e.ID)
}

// UnsafeInstallError indicates the operator approved an install while
// execution is not inside an isolated environment. Mutating installed
// packages outside a virtualenv is never permitted.
type UnsafeInstallError struct {
	ID string
}

func (e *UnsafeInstallError) Error() string {
	return fmt.Sprintf("refusing to install %s outside an isolated environment", e.ID)
}

// InstallError indicates a fetch or install step failed during remediation.
type InstallError struct {
	ID    string
	Cause error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install dependency %s: %v", e.ID, e.Cause)
}

func (e *InstallError) Unwrap() error {
	return e.Cause
}
