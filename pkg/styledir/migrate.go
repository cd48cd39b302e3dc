package styledir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LegacyConfigName is the project-root config file used before the
// .plotstyle/ directory existed.
const LegacyConfigName = "plotstyle.yaml"

// MigrateLegacyConfig moves <parent of root>/plotstyle.yaml to
// .plotstyle/config.yaml. The operation is idempotent: it is a no-op if the
// old file does not exist or the new file already exists. It reports whether
// a file was moved.
func MigrateLegacyConfig(d Dir) (bool, error) {
	oldPath := filepath.Join(filepath.Dir(d.Root()), LegacyConfigName)
	newPath := d.ConfigPath()

	if _, err := os.Stat(oldPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("styledir: migrate config: stat old path: %w", err)
	}

	if _, err := os.Stat(newPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("styledir: migrate config: stat new path: %w", err)
	}

	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return false, fmt.Errorf("styledir: migrate config: create dir: %w", err)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return false, fmt.Errorf("styledir: migrate config: %w", err)
	}

	return true, nil
}
