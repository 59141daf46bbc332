// Package bootstrap orchestrates environment validation, dependency
// resolution and action dispatch for a server deployment.
package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/liftoff-dev/liftoff/internal/config"
	"github.com/liftoff-dev/liftoff/internal/deps"
	"github.com/liftoff-dev/liftoff/internal/dispatch"
	"github.com/liftoff-dev/liftoff/internal/netcheck"
	"github.com/liftoff-dev/liftoff/internal/pip"
	"github.com/liftoff-dev/liftoff/internal/prompt"
	"github.com/liftoff-dev/liftoff/internal/toolchain"
)

// Phase names one state of the forward-only bootstrap state machine. There
// are no backward transitions; remediation loops happen inside dependency
// resolution, not across phases.
type Phase string

const (
	PhaseStart                Phase = "start"
	PhaseConfigLoaded         Phase = "config_loaded"
	PhaseToolchainVerified    Phase = "toolchain_verified"
	PhaseDependenciesResolved Phase = "dependencies_resolved"
	PhaseConnectivityChecked  Phase = "connectivity_checked"
	PhaseDispatching          Phase = "dispatching"
	PhaseDone                 Phase = "done"
)

// Bootstrapper gates the requested actions behind a fully-satisfied
// precondition set. Every collaborator is injectable; New fills in the real
// implementations.
type Bootstrapper struct {
	EnvPath  string
	DepsPath string
	Manifest config.Manifest

	Confirm      prompt.Confirmer
	InVirtualEnv func() bool
	Probe        netcheck.Prober
	Runner       dispatch.Runner

	// CheckToolchain verifies the runtime interpreter against the loaded
	// configuration.
	CheckToolchain func(ctx context.Context, cfg config.Config) error

	// NewManager builds the package manager once configuration is loaded.
	NewManager func(cfg config.Config) deps.Manager
}

// New returns a Bootstrapper wired to the real terminal, network and
// package tooling.
func New(envPath, depsPath string, manifest config.Manifest) *Bootstrapper {
	return &Bootstrapper{
		EnvPath:      envPath,
		DepsPath:     depsPath,
		Manifest:     manifest,
		Confirm:      prompt.Terminal(),
		InVirtualEnv: InVirtualEnv,
		Probe:        netcheck.Probe,
		Runner:       dispatch.ExecRunner{},
		CheckToolchain: func(ctx context.Context, cfg config.Config) error {
			return toolchain.New().Check(ctx, cfg.Interpreter(), cfg.MinInterpreterVersion())
		},
		NewManager: func(cfg config.Config) deps.Manager {
			return pip.New(cfg.Interpreter(), cfg.SourceControlBase())
		},
	}
}

// InVirtualEnv reports whether execution is inside an isolated Python
// environment.
func InVirtualEnv() bool {
	return os.Getenv("VIRTUAL_ENV") != ""
}

// Result summarizes a completed run.
type Result struct {
	RunID    string
	Warnings []string
}

// Run executes the single forward path: load configuration, verify the
// toolchain, resolve dependencies, probe connectivity, then dispatch the
// requested actions. Any fatal failure aborts immediately; completed
// remediation side effects are left in place.
func (b *Bootstrapper) Run(ctx context.Context, actions dispatch.ActionRequest) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	log := slog.With("run_id", result.RunID)
	log.Info("bootstrap starting", "phase", PhaseStart)

	cfg, err := config.Load(b.EnvPath)
	if err != nil {
		return result, err
	}
	log.Info("environment loaded", "phase", PhaseConfigLoaded, "path", b.EnvPath, "keys", cfg.Len())

	if err := b.CheckToolchain(ctx, cfg); err != nil {
		return result, err
	}
	log.Info("toolchain verified", "phase", PhaseToolchainVerified, "interpreter", cfg.Interpreter())

	if err := b.resolveDependencies(ctx, cfg); err != nil {
		return result, err
	}
	log.Info("dependencies resolved", "phase", PhaseDependenciesResolved)

	if warning, err := b.checkConnectivity(cfg); err != nil {
		return result, err
	} else if warning != "" {
		result.Warnings = append(result.Warnings, warning)
		log.Warn(warning)
	}
	log.Info("connectivity checked", "phase", PhaseConnectivityChecked, "endpoint", cfg.ServiceEndpoint())

	log.Info("dispatching actions", "phase", PhaseDispatching)
	dispatcher := &dispatch.Dispatcher{Manifest: b.Manifest, Runner: b.Runner}
	if err := dispatcher.Dispatch(ctx, actions, cfg); err != nil {
		return result, err
	}

	log.Info("bootstrap complete", "phase", PhaseDone)
	return result, nil
}

func (b *Bootstrapper) resolveDependencies(ctx context.Context, cfg config.Config) error {
	specs, err := deps.ParseFile(b.DepsPath)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return nil
	}

	manager := b.NewManager(cfg)
	installed, err := manager.Installed(ctx)
	if err != nil {
		return err
	}

	resolver := &deps.Resolver{
		Manager:      manager,
		Confirm:      b.Confirm,
		InVirtualEnv: b.InVirtualEnv,
	}
	return resolver.Resolve(ctx, specs, installed)
}

// checkConnectivity probes the dependent service. Unlike dependency
// resolution this check is advisory: the operator may override a failed
// probe, which is recorded as a warning.
func (b *Bootstrapper) checkConnectivity(cfg config.Config) (string, error) {
	endpoint := cfg.ServiceEndpoint()
	probeErr := b.Probe(endpoint, cfg.ConnectTimeout())
	if probeErr == nil {
		return "", nil
	}

	if !b.Confirm("Service endpoint " + endpoint + " is unreachable. Continue anyway?") {
		return "", &ConnectivityRefusedError{Endpoint: endpoint, Cause: probeErr}
	}
	return "continuing despite unreachable endpoint " + endpoint, nil
}
