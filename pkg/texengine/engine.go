// Package texengine locates a TeX engine (lualatex, xelatex, pdflatex) on the
// host. It first asks the process search path and then falls back to a fixed,
// per-platform list of well-known MiKTeX, TeX Live and MacTeX install
// directories. When an engine is found outside the search path, its directory
// is appended to PATH for the rest of the process lifetime.
package texengine

import (
	"errors"
	"fmt"
	"strings"
)

// Engine names a TeX engine executable.
type Engine string

// Supported engines.
const (
	LuaLaTeX Engine = "lualatex"
	XeLaTeX  Engine = "xelatex"
	PDFLaTeX Engine = "pdflatex"
)

// DefaultEngine is used when no engine is requested.
const DefaultEngine = LuaLaTeX

// ErrUnknownEngine is returned by ParseEngine for names outside the allow-list.
var ErrUnknownEngine = errors.New("texengine: unknown engine")

// Engines returns the supported engines in preference order.
func Engines() []Engine {
	return []Engine{LuaLaTeX, XeLaTeX, PDFLaTeX}
}

// ParseEngine maps a user supplied name onto an Engine. Matching ignores case
// and surrounding whitespace. An empty name yields DefaultEngine.
func ParseEngine(name string) (Engine, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return DefaultEngine, nil
	}

	for _, e := range Engines() {
		if string(e) == n {
			return e, nil
		}
	}

	return "", fmt.Errorf("%w %q (want one of lualatex, xelatex, pdflatex)", ErrUnknownEngine, name)
}

// Unicode reports whether the engine understands fontspec and unicode-math.
func (e Engine) Unicode() bool {
	return e == LuaLaTeX || e == XeLaTeX
}

// Executable returns the file name of the engine binary on goos.
func (e Engine) Executable(goos string) string {
	if goos == "windows" {
		return string(e) + ".exe"
	}

	return string(e)
}

func (e Engine) String() string { return string(e) }
