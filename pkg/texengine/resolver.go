package texengine

import (
	"io/fs"
	"os"
	"os/exec"
	"path"
	"runtime"
	"strings"
)

// Detected describes a resolved engine.
type Detected struct {
	Engine Engine
	// Path is the executable as returned by the search path lookup, or the
	// absolute path of the candidate that matched.
	Path string
	// Dir is the directory holding the executable. Empty when the engine was
	// resolved through the search path.
	Dir string
	// FromSearchPath is true when the engine was already invocable by name.
	FromSearchPath bool
	// PathExtended is true when Dir was appended to PATH by this resolution.
	PathExtended bool
}

// Probe is the outcome of looking for an engine in a single location.
type Probe struct {
	Path  string
	Found bool
}

// Found returns a successful Probe.
func Found(p string) Probe { return Probe{Path: p, Found: true} }

// NotFound is the unsuccessful Probe.
var NotFound = Probe{}

// Resolver finds TeX engines. The function fields default to the real
// operating system when nil; tests substitute them.
type Resolver struct {
	LookPath func(file string) (string, error)
	Stat     func(name string) (fs.FileInfo, error)
	Getenv   func(key string) string
	Setenv   func(key, value string) error
	// GOOS selects the candidate list and executable suffix. Defaults to
	// runtime.GOOS.
	GOOS string
	// Candidates overrides CandidateDirs when non-nil.
	Candidates []string
}

// NewResolver returns a Resolver bound to the current process.
func NewResolver() *Resolver {
	return &Resolver{
		LookPath: exec.LookPath,
		Stat:     os.Stat,
		Getenv:   os.Getenv,
		Setenv:   os.Setenv,
		GOOS:     runtime.GOOS,
	}
}

// Resolve locates e. The search path is consulted first; when the engine is
// invocable by name no candidate directory is scanned. Otherwise the
// candidate directories are scanned in order and the first executable match
// wins, its directory being appended to PATH. A missing engine yields an
// *EngineNotFoundError.
func (r *Resolver) Resolve(e Engine) (Detected, error) {
	goos := r.goos()
	exe := e.Executable(goos)

	if p := r.probeSearchPath(exe); p.Found {
		return Detected{Engine: e, Path: p.Path, FromSearchPath: true}, nil
	}

	dirs := r.candidates()
	for _, dir := range dirs {
		p := r.probeDir(dir, exe)
		if !p.Found {
			continue
		}

		det := Detected{Engine: e, Path: p.Path, Dir: dir}

		extended, err := r.extendPath(dir)
		if err != nil {
			return Detected{}, err
		}
		det.PathExtended = extended

		return det, nil
	}

	return Detected{}, &EngineNotFoundError{Engine: e, GOOS: goos, Searched: dirs}
}

// ResolveAll resolves every supported engine and returns the ones found.
// Missing engines are reported in the returned error map keyed by engine.
func (r *Resolver) ResolveAll() ([]Detected, map[Engine]error) {
	var (
		found  []Detected
		failed map[Engine]error
	)

	for _, e := range Engines() {
		det, err := r.Resolve(e)
		if err != nil {
			if failed == nil {
				failed = make(map[Engine]error)
			}
			failed[e] = err

			continue
		}

		found = append(found, det)
	}

	return found, failed
}

func (r *Resolver) probeSearchPath(exe string) Probe {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	p, err := lookPath(exe)
	if err != nil || p == "" {
		return NotFound
	}

	return Found(p)
}

func (r *Resolver) probeDir(dir, exe string) Probe {
	stat := r.Stat
	if stat == nil {
		stat = os.Stat
	}

	candidate := r.join(dir, exe)

	info, err := stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return NotFound
	}

	if r.goos() != "windows" && info.Mode().Perm()&0o111 == 0 {
		return NotFound
	}

	return Found(candidate)
}

// extendPath appends dir to PATH unless it is already listed. It reports
// whether PATH was changed.
func (r *Resolver) extendPath(dir string) (bool, error) {
	getenv, setenv := r.Getenv, r.Setenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if setenv == nil {
		setenv = os.Setenv
	}

	sep := r.listSeparator()
	current := getenv("PATH")

	for _, entry := range strings.Split(current, sep) {
		if r.samePath(entry, dir) {
			return false, nil
		}
	}

	next := dir
	if current != "" {
		next = current + sep + dir
	}

	if err := setenv("PATH", next); err != nil {
		return false, &PathUpdateError{Dir: dir, Err: err}
	}

	return true, nil
}

func (r *Resolver) candidates() []string {
	if r.Candidates != nil {
		return r.Candidates
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	return CandidateDirs(r.goos(), getenv)
}

func (r *Resolver) goos() string {
	if r.GOOS == "" {
		return runtime.GOOS
	}

	return r.GOOS
}

func (r *Resolver) listSeparator() string {
	if r.goos() == "windows" {
		return ";"
	}

	return ":"
}

func (r *Resolver) join(dir, file string) string {
	if r.goos() == "windows" {
		return strings.TrimRight(dir, `\/`) + `\` + file
	}

	return path.Join(dir, file)
}

func (r *Resolver) samePath(a, b string) bool {
	if r.goos() == "windows" {
		return strings.EqualFold(strings.TrimRight(a, `\/`), strings.TrimRight(b, `\/`))
	}

	return path.Clean(a) == path.Clean(b)
}
