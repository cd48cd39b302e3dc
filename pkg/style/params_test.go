package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, ModeNative, s.Mode)
	assert.Equal(t, BackendDefault, s.Backend)
	assert.Equal(t, [2]float64{8, 6}, s.FigSize)
	assert.InDelta(t, 12.0, s.FontSize, 0)
	assert.Equal(t, 600, s.DPI)
	assert.InDelta(t, 1.0, s.LineWidth, 0)
	assert.Equal(t, MathTextDejaVuSans, s.MathTextFontset)
	assert.False(t, s.UseTeX)
}

func TestSetGeneralParams(t *testing.T) {
	s := New()
	p := Params{FigSize: [2]float64{6, 4}, FontSize: 10, DPI: 200, LineWidth: 1.5}

	s.SetGeneralParams(p)

	assert.Equal(t, p.FigSize, s.FigSize)
	assert.InDelta(t, p.FontSize, s.FontSize, 0)
	assert.Equal(t, p.DPI, s.DPI)
	assert.InDelta(t, p.LineWidth, s.LineWidth, 0)

	// Applying the same params again yields the same state.
	before := s.Clone()
	s.SetGeneralParams(p)
	assert.Equal(t, before, s)
}

func TestSetGeneralParams_LastWriteWins(t *testing.T) {
	s := New()

	s.SetGeneralParams(Params{FigSize: [2]float64{6, 4}, FontSize: 10, DPI: 200, LineWidth: 2,
		Extra: map[string]string{"axes.grid": "True"}})
	s.SetGeneralParams(Params{FigSize: [2]float64{3, 2}, FontSize: 8, DPI: 100, LineWidth: 0.5})

	assert.Equal(t, [2]float64{3, 2}, s.FigSize)
	assert.InDelta(t, 8.0, s.FontSize, 0)
	assert.Equal(t, 100, s.DPI)
	assert.InDelta(t, 0.5, s.LineWidth, 0)
	assert.Empty(t, s.Extra)
}

func TestSetGeneralParams_NoValidation(t *testing.T) {
	s := New()

	s.SetGeneralParams(Params{FigSize: [2]float64{-1, 0}, FontSize: -3, DPI: -72, LineWidth: 0})

	assert.Equal(t, [2]float64{-1, 0}, s.FigSize)
	assert.Equal(t, -72, s.DPI)
}

func TestSetGeneralParams_ExtraIsCopied(t *testing.T) {
	s := New()
	extra := map[string]string{"axes.grid": "True"}

	s.SetGeneralParams(Params{FigSize: [2]float64{1, 1}, FontSize: 1, DPI: 1, LineWidth: 1, Extra: extra})
	extra["axes.grid"] = "False"

	assert.Equal(t, "True", s.Extra["axes.grid"])
	assert.Equal(t, "True", s.GeneralParams().Extra["axes.grid"])
}
