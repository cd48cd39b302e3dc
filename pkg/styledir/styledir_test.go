package styledir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_PathAccessors(t *testing.T) {
	d := New("/project/.plotstyle")

	assert.Equal(t, "/project/.plotstyle", d.Root())
	assert.Equal(t, "/project/.plotstyle/config.yaml", d.ConfigPath())
	assert.Equal(t, "/project/.plotstyle/matplotlibrc", d.RCPath())
	assert.Equal(t, "/project/.plotstyle/local", d.LocalDir())
	assert.Equal(t, "/project/.plotstyle/local/build", d.BuildDir())
	assert.Equal(t, "/project/.plotstyle/.gitignore", d.GitignorePath())
}

func TestDir_Exists(t *testing.T) {
	tmp := t.TempDir()

	d := New(filepath.Join(tmp, "missing"))
	assert.False(t, d.Exists())

	d = New(tmp)
	assert.True(t, d.Exists())
}

func TestEnsureStructure(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, ".plotstyle")
	require.NoError(t, os.Mkdir(root, 0o750))

	d := New(root)
	require.NoError(t, EnsureStructure(d))

	info, err := os.Stat(d.BuildDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(d.GitignorePath())
	require.NoError(t, err)
	assert.Equal(t, "local/\n", string(data))
}

func TestEnsureStructure_MissingRoot(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), ".plotstyle"))

	err := EnsureStructure(d)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, d.Exists())
}

func TestEnsureStructure_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, ".plotstyle")
	require.NoError(t, os.Mkdir(root, 0o750))

	d := New(root)
	require.NoError(t, EnsureStructure(d))

	custom := "local/\ncustom-entry\n"
	require.NoError(t, os.WriteFile(d.GitignorePath(), []byte(custom), 0o600))

	require.NoError(t, EnsureStructure(d))

	data, err := os.ReadFile(d.GitignorePath())
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestBootstrapWithConfig(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), ".plotstyle"))
	cfg := []byte("general:\n  dpi: 300\n")

	require.NoError(t, BootstrapWithConfig(d, cfg))

	assert.True(t, d.Exists())
	data, err := os.ReadFile(d.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, cfg, data)

	// A second bootstrap keeps the existing config.
	require.NoError(t, BootstrapWithConfig(d, []byte("other")))
	data, err = os.ReadFile(d.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, cfg, data)
}

func TestMigrateLegacyConfig(t *testing.T) {
	tmp := t.TempDir()
	legacy := filepath.Join(tmp, LegacyConfigName)
	require.NoError(t, os.WriteFile(legacy, []byte("latex:\n  use_latex: true\n"), 0o600))

	d := New(filepath.Join(tmp, ".plotstyle"))

	moved, err := MigrateLegacyConfig(d)
	require.NoError(t, err)
	assert.True(t, moved)

	_, err = os.Stat(legacy)
	assert.ErrorIs(t, err, os.ErrNotExist)

	data, err := os.ReadFile(d.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "latex:\n  use_latex: true\n", string(data))

	moved, err = MigrateLegacyConfig(d)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestMigrateLegacyConfig_KeepsExisting(t *testing.T) {
	tmp := t.TempDir()
	legacy := filepath.Join(tmp, LegacyConfigName)
	require.NoError(t, os.WriteFile(legacy, []byte("old"), 0o600))

	d := New(filepath.Join(tmp, ".plotstyle"))
	require.NoError(t, BootstrapWithConfig(d, []byte("new")))

	moved, err := MigrateLegacyConfig(d)
	require.NoError(t, err)
	assert.False(t, moved)

	data, err := os.ReadFile(d.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	_, err = os.Stat(legacy)
	assert.NoError(t, err)
}
