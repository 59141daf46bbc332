// Package dispatch runs the authorized post-setup actions in their fixed
// order once every precondition is satisfied.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/liftoff-dev/liftoff/internal/config"
)

// ActionRequest is the set of independent action flags parsed from the
// command line. Multiple may be set; Dispatch runs them in the fixed order
// InitDB, RunTests, OpenShell, RunServer.
type ActionRequest struct {
	InitDB    bool
	RunTests  bool
	OpenShell bool
	RunServer bool
}

// Any reports whether at least one action was requested.
func (a ActionRequest) Any() bool {
	return a.InitDB || a.RunTests || a.OpenShell || a.RunServer
}

// Runner launches one collaborator command to completion. env is appended to
// the inherited process environment.
type Runner interface {
	Run(ctx context.Context, cmd config.Command, env []string) error
}

// ExecRunner runs collaborator commands as child processes with the
// operator's terminal attached.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, cmd config.Command, env []string) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Env = append(os.Environ(), env...)
	return c.Run()
}

// Dispatcher executes requested actions against the collaborator manifest.
type Dispatcher struct {
	Manifest config.Manifest
	Runner   Runner
}

// Dispatch runs each requested action in the fixed order. Any action that
// terminates abnormally is fatal; earlier actions' side effects are not
// rolled back. The advisory style checkers run after the test suite and
// their failures are reported but swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, req ActionRequest, cfg config.Config) error {
	env := cfg.Environ()

	steps := []struct {
		name      string
		requested bool
		cmd       config.Command
	}{
		{"create-db", req.InitDB, d.Manifest.Actions.CreateDB},
		{"test", req.RunTests, d.Manifest.Actions.Test},
		{"shell", req.OpenShell, d.Manifest.Actions.Shell},
		{"run-server", req.RunServer, d.Manifest.Actions.RunServer},
	}

	for _, step := range steps {
		if !step.requested {
			continue
		}
		slog.Info("running action", "action", step.name, "command", step.cmd.String())
		if err := d.Runner.Run(ctx, step.cmd, env); err != nil {
			return fmt.Errorf("action %s failed: %w", step.name, err)
		}
		if step.name == "test" {
			d.runCheckers(ctx, env)
		}
	}

	return nil
}

// runCheckers runs the optional style/lint checkers. A checker that is
// missing or exits non-zero never fails the run.
func (d *Dispatcher) runCheckers(ctx context.Context, env []string) {
	for _, checker := range d.Manifest.Checkers {
		slog.Info("running style checker", "command", checker.String())
		if err := d.Runner.Run(ctx, checker, env); err != nil {
			slog.Warn("style checker failed (advisory only)", "command", checker.String(), "error", err)
		}
	}
}
