package texengine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv is an in-memory environment for PATH manipulation.
type fakeEnv map[string]string

func (e fakeEnv) get(k string) string { return e[k] }

func (e fakeEnv) set(k, v string) error {
	e[k] = v
	return nil
}

func notOnPath(string) (string, error) { return "", errors.New("executable file not found in $PATH") }

func writeExecutable(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o750))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), mode))
	require.NoError(t, os.Chmod(p, mode))

	return p
}

func TestResolve_OnSearchPath(t *testing.T) {
	statCalls := 0
	r := &Resolver{
		LookPath: func(file string) (string, error) {
			assert.Equal(t, "lualatex", file)
			return "/usr/bin/lualatex", nil
		},
		Stat: func(string) (fs.FileInfo, error) {
			statCalls++
			return nil, fs.ErrNotExist
		},
		GOOS:       "linux",
		Candidates: []string{"/somewhere"},
	}

	det, err := r.Resolve(LuaLaTeX)
	require.NoError(t, err)

	assert.Equal(t, LuaLaTeX, det.Engine)
	assert.Equal(t, "/usr/bin/lualatex", det.Path)
	assert.True(t, det.FromSearchPath)
	assert.False(t, det.PathExtended)
	assert.Zero(t, statCalls, "candidate directories must not be scanned")
}

func TestResolve_CandidateDirExtendsPath(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "empty")
	second := filepath.Join(tmp, "texlive", "bin")
	third := filepath.Join(tmp, "other", "bin")
	require.NoError(t, os.MkdirAll(first, 0o750))
	want := writeExecutable(t, second, "xelatex", 0o755)
	writeExecutable(t, third, "xelatex", 0o755)

	env := fakeEnv{"PATH": "/usr/bin:/bin"}
	r := &Resolver{
		LookPath:   notOnPath,
		Stat:       os.Stat,
		Getenv:     env.get,
		Setenv:     env.set,
		GOOS:       "linux",
		Candidates: []string{first, second, third},
	}

	det, err := r.Resolve(XeLaTeX)
	require.NoError(t, err)

	assert.Equal(t, want, det.Path)
	assert.Equal(t, second, det.Dir)
	assert.False(t, det.FromSearchPath)
	assert.True(t, det.PathExtended)
	assert.Equal(t, "/usr/bin:/bin:"+second, env["PATH"])
}

func TestResolve_DoesNotDuplicatePathEntry(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "bin")
	writeExecutable(t, dir, "pdflatex", 0o755)

	env := fakeEnv{"PATH": "/usr/bin"}
	r := &Resolver{
		LookPath:   notOnPath,
		Stat:       os.Stat,
		Getenv:     env.get,
		Setenv:     env.set,
		GOOS:       "linux",
		Candidates: []string{dir},
	}

	det, err := r.Resolve(PDFLaTeX)
	require.NoError(t, err)
	assert.True(t, det.PathExtended)

	det, err = r.Resolve(PDFLaTeX)
	require.NoError(t, err)
	assert.False(t, det.PathExtended)
	assert.Equal(t, "/usr/bin:"+dir, env["PATH"])
}

func TestResolve_EmptyPath(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "bin")
	writeExecutable(t, dir, "lualatex", 0o755)

	env := fakeEnv{}
	r := &Resolver{
		LookPath:   notOnPath,
		Stat:       os.Stat,
		Getenv:     env.get,
		Setenv:     env.set,
		GOOS:       "linux",
		Candidates: []string{dir},
	}

	_, err := r.Resolve(LuaLaTeX)
	require.NoError(t, err)
	assert.Equal(t, dir, env["PATH"])
}

func TestResolve_SkipsNonExecutableAndDirectories(t *testing.T) {
	tmp := t.TempDir()
	plain := filepath.Join(tmp, "plain")
	writeExecutable(t, plain, "lualatex", 0o644)

	asDir := filepath.Join(tmp, "asdir")
	require.NoError(t, os.MkdirAll(filepath.Join(asDir, "lualatex"), 0o750))

	good := filepath.Join(tmp, "good")
	want := writeExecutable(t, good, "lualatex", 0o755)

	env := fakeEnv{"PATH": "/bin"}
	r := &Resolver{
		LookPath:   notOnPath,
		Stat:       os.Stat,
		Getenv:     env.get,
		Setenv:     env.set,
		GOOS:       "linux",
		Candidates: []string{plain, asDir, good},
	}

	det, err := r.Resolve(LuaLaTeX)
	require.NoError(t, err)
	assert.Equal(t, want, det.Path)
}

func TestResolve_NotFound(t *testing.T) {
	env := fakeEnv{"PATH": "/bin"}
	r := &Resolver{
		LookPath:   notOnPath,
		Stat:       func(string) (fs.FileInfo, error) { return nil, fs.ErrPermission },
		Getenv:     env.get,
		Setenv:     env.set,
		GOOS:       "linux",
		Candidates: []string{"/a", "/b"},
	}

	_, err := r.Resolve(LuaLaTeX)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineNotFound)

	var nf *EngineNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, LuaLaTeX, nf.Engine)
	assert.Equal(t, []string{"/a", "/b"}, nf.Searched)
	assert.Contains(t, err.Error(), "lualatex")
	assert.Contains(t, err.Error(), "texlive-luatex")
	assert.Equal(t, "/bin", env["PATH"], "PATH must be untouched on failure")
}

func TestResolve_SetenvFailure(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "bin")
	writeExecutable(t, dir, "xelatex", 0o755)

	boom := errors.New("boom")
	r := &Resolver{
		LookPath:   notOnPath,
		Stat:       os.Stat,
		Getenv:     func(string) string { return "" },
		Setenv:     func(string, string) error { return boom },
		GOOS:       "linux",
		Candidates: []string{dir},
	}

	_, err := r.Resolve(XeLaTeX)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var pu *PathUpdateError
	require.ErrorAs(t, err, &pu)
	assert.Equal(t, dir, pu.Dir)
}

func TestResolve_WindowsSuffixAndSeparator(t *testing.T) {
	var statted []string
	env := fakeEnv{"PATH": `C:\Windows`}
	r := &Resolver{
		LookPath: func(file string) (string, error) {
			assert.Equal(t, "xelatex.exe", file)
			return "", errors.New("not found")
		},
		Stat: func(name string) (fs.FileInfo, error) {
			statted = append(statted, name)
			return os.Stat(os.Args[0])
		},
		Getenv:     env.get,
		Setenv:     env.set,
		GOOS:       "windows",
		Candidates: []string{`C:\texlive\2024\bin\windows\`},
	}

	det, err := r.Resolve(XeLaTeX)
	require.NoError(t, err)

	assert.Equal(t, []string{`C:\texlive\2024\bin\windows\xelatex.exe`}, statted)
	assert.Equal(t, `C:\texlive\2024\bin\windows\xelatex.exe`, det.Path)
	assert.Equal(t, `C:\Windows;C:\texlive\2024\bin\windows\`, env["PATH"])
}

func TestResolveAll(t *testing.T) {
	r := &Resolver{
		LookPath: func(file string) (string, error) {
			if file == "pdflatex" {
				return "/usr/bin/pdflatex", nil
			}
			return "", errors.New("not found")
		},
		Stat:       func(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist },
		GOOS:       "linux",
		Candidates: []string{},
	}

	found, failed := r.ResolveAll()

	require.Len(t, found, 1)
	assert.Equal(t, PDFLaTeX, found[0].Engine)
	assert.Len(t, failed, 2)
	assert.ErrorIs(t, failed[LuaLaTeX], ErrEngineNotFound)
	assert.ErrorIs(t, failed[XeLaTeX], ErrEngineNotFound)
}
