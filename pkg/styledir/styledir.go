// Package styledir encapsulates all path knowledge for the .plotstyle/ project
// directory. It provides a Dir value object with accessors for the config
// file, the generated matplotlibrc, and the local build area used when
// compiling PGF figures.
package styledir

import (
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within a .plotstyle/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory layout.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .plotstyle/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the main config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// RCPath returns the default path of the generated matplotlibrc.
func (d Dir) RCPath() string { return filepath.Join(d.root, "matplotlibrc") }

// LocalDir returns the path to the local (gitignored) runtime state directory.
func (d Dir) LocalDir() string { return filepath.Join(d.root, "local") }

// BuildDir returns the scratch directory for LaTeX compilation.
func (d Dir) BuildDir() string { return filepath.Join(d.root, "local", "build") }

// GitignorePath returns the path to the .gitignore file inside .plotstyle/.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// Exists reports whether the .plotstyle/ root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}
