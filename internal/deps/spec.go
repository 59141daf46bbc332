// Package deps parses the declared dependency list and resolves each entry
// against the local filesystem or the installed-packages index, remediating
// interactively when a dependency is absent.
package deps

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"
)

// Kind classifies a dependency by its identifier prefix. Classification is a
// pure function of the identifier and never changes once computed.
type Kind int

const (
	// KindLocal names a sibling directory expected to exist on disk,
	// installed by path.
	KindLocal Kind = iota
	// KindRegistry names a package resolvable from the installed-packages
	// index, installed by name.
	KindRegistry
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRegistry:
		return "registry"
	default:
		return "unknown"
	}
}

// Dependency is one declared entry from the dependency file.
type Dependency struct {
	ID   string
	Kind Kind
}

// Classify determines the kind of an identifier from its leading path-like
// prefix: identifiers addressed relative to the working directory are local
// sibling checkouts, everything else is a registry package.
func Classify(id string) Kind {
	if strings.HasPrefix(id, "../") || strings.HasPrefix(id, "./") {
		return KindLocal
	}
	return KindRegistry
}

// New builds a Dependency with its kind computed from the identifier.
func New(id string) Dependency {
	return Dependency{ID: id, Kind: Classify(id)}
}

// Name returns the bare package name: the final path element for local
// dependencies, the identifier itself for registry packages.
func (d Dependency) Name() string {
	if d.Kind == KindLocal {
		return path.Base(d.ID)
	}
	return d.ID
}

// ParseFile reads the newline-delimited dependency declaration file. Blank
// lines and lines starting with '#' are skipped. Order is preserved.
func ParseFile(filePath string) ([]Dependency, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dependency file %s: %w", filePath, err)
	}
	defer f.Close()

	var specs []Dependency
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, New(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dependency file %s: %w", filePath, err)
	}

	return specs, nil
}

// InstalledSet is a snapshot of currently installed registry packages,
// captured once at the start of resolution. It is intentionally not updated
// by installs performed during the same run.
type InstalledSet map[string]struct{}

// Has reports whether name appears verbatim in the snapshot.
func (s InstalledSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// NewInstalledSet builds a snapshot from package names.
func NewInstalledSet(names ...string) InstalledSet {
	set := make(InstalledSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
