package styledir

import (
	"errors"
	"fmt"
	"os"
)

const gitignoreContent = "local/\n"

// EnsureStructure creates the local/build directory and .gitignore file if
// they are missing. It is safe to call multiple times. It does NOT create the
// .plotstyle/ root itself; the caller decides whether to bootstrap from
// scratch or only set up an existing directory.
func EnsureStructure(d Dir) error {
	if !d.Exists() {
		return fmt.Errorf("styledir: %s: %w", d.Root(), os.ErrNotExist)
	}

	if err := os.MkdirAll(d.BuildDir(), 0o750); err != nil {
		return fmt.Errorf("styledir: create build dir: %w", err)
	}

	if err := ensureGitignore(d); err != nil {
		return fmt.Errorf("styledir: gitignore: %w", err)
	}

	return nil
}

// BootstrapWithConfig creates the .plotstyle/ root, its structure, and writes
// configYAML as the config file unless one already exists.
func BootstrapWithConfig(d Dir, configYAML []byte) error {
	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return fmt.Errorf("styledir: create root: %w", err)
	}

	if err := EnsureStructure(d); err != nil {
		return err
	}

	if _, err := os.Stat(d.ConfigPath()); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("styledir: stat config: %w", err)
	}

	if err := os.WriteFile(d.ConfigPath(), configYAML, 0o600); err != nil {
		return fmt.Errorf("styledir: write config: %w", err)
	}

	return nil
}

// ensureGitignore creates the .gitignore file if it does not exist.
func ensureGitignore(d Dir) error {
	path := d.GitignorePath()

	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}

	return os.WriteFile(path, []byte(gitignoreContent), 0o600)
}
