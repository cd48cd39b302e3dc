package style

import (
	"maps"
)

// Params are the general visual parameters applied by SetGeneralParams.
type Params struct {
	FigSize   [2]float64 // width, height in inches
	FontSize  float64    // points
	DPI       int
	LineWidth float64 // points
	// Extra rc entries applied alongside the core four.
	Extra map[string]string
}

// DefaultParams returns the parameters used when the caller supplies none.
func DefaultParams() Params {
	return Params{
		FigSize:   [2]float64{8, 6},
		FontSize:  12,
		DPI:       600,
		LineWidth: 1.0,
	}
}

// SetGeneralParams overwrites the figure size, font size, DPI and line width
// of s with the values in p. Values are not validated. The previous Extra map
// is replaced by p.Extra.
func (s *Style) SetGeneralParams(p Params) {
	s.FigSize = p.FigSize
	s.FontSize = p.FontSize
	s.DPI = p.DPI
	s.LineWidth = p.LineWidth
	s.Extra = maps.Clone(p.Extra)
}

// GeneralParams returns the parameters currently held by s.
func (s *Style) GeneralParams() Params {
	return Params{
		FigSize:   s.FigSize,
		FontSize:  s.FontSize,
		DPI:       s.DPI,
		LineWidth: s.LineWidth,
		Extra:     maps.Clone(s.Extra),
	}
}
