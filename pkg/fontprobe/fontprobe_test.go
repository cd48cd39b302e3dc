package fontprobe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/plotstyle/pkg/style"
)

const fcListOutput = `DejaVu Sans
Arial
Cambria Math
Noto Sans CJK SC,Noto Sans CJK SC Regular
DejaVu Sans,DejaVu Sans Condensed
Latin Modern Math
`

func fakeRun(out string, err error) RunFunc {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "fc-list" {
			return nil, errors.New("unexpected program " + name)
		}
		return []byte(out), err
	}
}

func TestFamilies(t *testing.T) {
	p := New(fakeRun(fcListOutput, nil))

	families, err := p.Families(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"arial",
		"cambria math",
		"dejavu sans",
		"dejavu sans condensed",
		"latin modern math",
		"noto sans cjk sc",
		"noto sans cjk sc regular",
	}, families)
}

func TestMissing(t *testing.T) {
	p := New(fakeRun(fcListOutput, nil))

	missing, err := p.Missing(context.Background(), style.FontSet{
		Main:    "arial",
		Math:    "Cambria Math",
		MathCal: "Brush Script MT",
		Special: "Aptos",
	})
	require.NoError(t, err)

	assert.Equal(t, []style.Slot{
		{Role: "mathcal", Font: "Brush Script MT"},
		{Role: "special", Font: "Aptos"},
	}, missing)
}

func TestMissing_EmptyFontSet(t *testing.T) {
	p := New(fakeRun(fcListOutput, nil))

	missing, err := p.Missing(context.Background(), style.FontSet{})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestFamilies_FontconfigUnavailable(t *testing.T) {
	p := New(fakeRun("", errors.New(`exec: "fc-list": executable file not found in $PATH`)))

	_, err := p.Families(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFontconfigUnavailable)
	assert.Contains(t, err.Error(), "fc-list")
}
