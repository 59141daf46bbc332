package deps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/liftoff-dev/liftoff/internal/prompt"
)

// Manager inspects and mutates the installed-package state. The concrete
// implementation shells out to pip and git; tests substitute fakes.
type Manager interface {
	// Installed captures the current registry package snapshot.
	Installed(ctx context.Context) (InstalledSet, error)
	// Fetch retrieves a local dependency from its remote source into
	// destPath.
	Fetch(ctx context.Context, name, destPath string) error
	// InstallPath installs a local dependency from a directory.
	InstallPath(ctx context.Context, path string) error
	// InstallName installs a registry package by name.
	InstallName(ctx context.Context, name string) error
}

// Resolver walks the declared dependency list in order and ensures every
// entry is present, prompting the operator before any remediation. A single
// declined or failed entry aborts the whole resolution.
type Resolver struct {
	Manager Manager
	Confirm prompt.Confirmer

	// InVirtualEnv reports whether execution is inside an isolated
	// environment. Consulted only before a mutating install, never for
	// read-only presence checks.
	InVirtualEnv func() bool

	// BaseDir anchors relative local-dependency paths. Empty means the
	// current working directory.
	BaseDir string
}

// Resolve processes each dependency in declared order. Present entries are
// no-ops; absent entries trigger remediation. Resolution is all-or-nothing:
// the first decline or failure stops processing of all later entries.
func (r *Resolver) Resolve(ctx context.Context, specs []Dependency, installed InstalledSet) error {
	for _, dep := range specs {
		present, err := r.present(dep, installed)
		if err != nil {
			return err
		}
		if present {
			slog.Debug("dependency present", "id", dep.ID, "kind", dep.Kind.String())
			continue
		}
		if err := r.remediate(ctx, dep); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) present(dep Dependency, installed InstalledSet) (bool, error) {
	switch dep.Kind {
	case KindLocal:
		info, err := os.Stat(r.localPath(dep))
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to check dependency %s: %w", dep.ID, err)
		}
		return info.IsDir(), nil
	default:
		return installed.Has(dep.ID), nil
	}
}

func (r *Resolver) remediate(ctx context.Context, dep Dependency) error {
	var question string
	if dep.Kind == KindLocal {
		question = fmt.Sprintf("Dependency %s is missing. Fetch it from source control and install it?", dep.ID)
	} else {
		question = fmt.Sprintf("Package %s is not installed. Install it from the package index?", dep.ID)
	}

	if !r.Confirm(question) {
		return &UnsatisfiedError{ID: dep.ID}
	}

	// Operator consent never overrides the isolation guard.
	if r.InVirtualEnv == nil || !r.InVirtualEnv() {
		return &UnsafeInstallError{ID: dep.ID}
	}

	slog.Info("installing dependency", "id", dep.ID, "kind", dep.Kind.String())

	switch dep.Kind {
	case KindLocal:
		dest := r.localPath(dep)
		if err := r.Manager.Fetch(ctx, dep.Name(), dest); err != nil {
			return &InstallError{ID: dep.ID, Cause: err}
		}
		if err := r.Manager.InstallPath(ctx, dest); err != nil {
			return &InstallError{ID: dep.ID, Cause: err}
		}
	default:
		if err := r.Manager.InstallName(ctx, dep.ID); err != nil {
			return &InstallError{ID: dep.ID, Cause: err}
		}
	}

	return nil
}

func (r *Resolver) localPath(dep Dependency) string {
	if r.BaseDir == "" {
		return filepath.Clean(dep.ID)
	}
	return filepath.Join(r.BaseDir, dep.ID)
}
