// Package style holds the plotting configuration shared by the renderers and
// the rc exporter. A Style is an explicit value owned by the caller: it is
// created with New, adjusted through SetGeneralParams and Configurator.Setup,
// and then handed to whatever consumes it (pkg/render, pkg/rcfile).
//
// A Style is not safe for concurrent mutation.
package style

import (
	"maps"

	"github.com/germanamz/plotstyle/pkg/texengine"
)

// Mode is the text rendering mode.
type Mode int

const (
	// ModeNative renders text with the plotting library's own engine.
	ModeNative Mode = iota
	// ModeDefaultLatex enables the library's built-in usetex path.
	ModeDefaultLatex
	// ModeCustomPGF defers text to an external LaTeX pass via the PGF backend.
	ModeCustomPGF
)

func (m Mode) String() string {
	switch m {
	case ModeNative:
		return "native"
	case ModeDefaultLatex:
		return "default-latex"
	case ModeCustomPGF:
		return "custom-pgf"
	default:
		return "unknown"
	}
}

// Backend names an output backend.
type Backend string

const (
	// BackendDefault is the library's default raster renderer.
	BackendDefault Backend = "agg"
	// BackendPGF emits PGF pictures for an external LaTeX pass.
	BackendPGF Backend = "pgf"
)

// Font families accepted by FontFamily.
const (
	FamilySerif     = "serif"
	FamilySansSerif = "sans-serif"
)

// Math text fontsets.
const (
	MathTextDejaVuSans = "dejavusans"
	MathTextCM         = "cm"
)

// Style is the full plotting configuration.
type Style struct {
	Mode    Mode
	Backend Backend

	FigSize   [2]float64 // inches
	FontSize  float64    // points
	DPI       int
	LineWidth float64 // points

	FontFamily      string
	UseTeX          bool
	MathTextFontset string
	LatexPreamble   string

	PGFTexSystem string
	PGFRCFonts   bool
	PGFPreamble  string

	// Fonts is the font set in effect. Only populated in ModeCustomPGF.
	Fonts FontSet
	// Engine is the engine resolved by the last CustomPGF setup.
	Engine *texengine.Detected

	// Extra carries rc entries with no dedicated field.
	Extra map[string]string
}

// New returns a Style holding the library defaults.
func New() *Style {
	s := &Style{
		Mode:            ModeNative,
		Backend:         BackendDefault,
		FontFamily:      FamilySansSerif,
		MathTextFontset: MathTextDejaVuSans,
		PGFTexSystem:    string(texengine.XeLaTeX),
		PGFRCFonts:      true,
	}
	s.SetGeneralParams(DefaultParams())

	return s
}

// Clone returns a deep copy of s.
func (s *Style) Clone() *Style {
	c := *s
	c.Extra = maps.Clone(s.Extra)

	if s.Engine != nil {
		det := *s.Engine
		c.Engine = &det
	}

	return &c
}
