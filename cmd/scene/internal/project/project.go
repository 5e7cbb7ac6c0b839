// Package project locates the Go module a scene document belongs to and
// loads its optional engine configuration.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/go-drift/scene/pkg/config"
)

// Project is a Go module directory.
type Project struct {
	Root       string
	ModulePath string
	Name       string
}

// Find walks up from start to the nearest directory holding go.mod.
func Find(start string) (*Project, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return Open(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("not in a Go module (no go.mod found above %s)", start)
		}
		dir = parent
	}
}

// Open reads the module path from dir/go.mod.
func Open(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return nil, fmt.Errorf("could not determine module path from go.mod")
	}
	if err := module.CheckImportPath(path); err != nil {
		return nil, fmt.Errorf("invalid module path: %w", err)
	}
	return &Project{Root: dir, ModulePath: path, Name: nameOf(path, dir)}, nil
}

// Config loads scene.yaml or scene.toml from the project root.
func (p *Project) Config() (*config.Config, error) {
	return config.LoadOptional(p.Root)
}

// nameOf returns the last module path element without a major version
// suffix, falling back to the directory name.
func nameOf(modulePath, dir string) string {
	prefix, _, ok := module.SplitPathVersion(modulePath)
	if !ok || prefix == "" {
		return filepath.Base(dir)
	}
	parts := strings.Split(prefix, "/")
	return parts[len(parts)-1]
}
