package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPGFPreamble_AllSlots(t *testing.T) {
	got := PGFPreamble(DefaultFontSet())

	want := strings.Join([]string{
		`\usepackage{amsmath}`,
		`\usepackage{fontspec}`,
		`\usepackage{unicode-math}`,
		`\usepackage[UTF8]{ctex}`,
		`\setmainfont{Aptos}`,
		`\setsansfont{Aptos}`,
		`\setmathfont{Cambria Math}`,
		`\setmathrm{Cambria}`,
		`\setmathfont[range=\mathcal]{Brush Script MT}`,
		`\newfontfamily\specialfont{Arial}`,
		`\newcommand{\spchar}[1]{\text{\specialfont #1}}`,
	}, "\n")

	assert.Equal(t, want, got)
}

func TestPGFPreamble_EmptySet(t *testing.T) {
	got := PGFPreamble(FontSet{})

	assert.Equal(t, strings.Join(pgfBasePackages, "\n"), got)
}

func TestPGFPreamble_TrimsNames(t *testing.T) {
	got := PGFPreamble(FontSet{Sans: "  Noto Sans  ", MathRM: "   "})

	assert.Contains(t, got, `\setsansfont{Noto Sans}`)
	assert.NotContains(t, got, `\setmathrm`)
}

func TestFontSet_Slots(t *testing.T) {
	slots := FontSet{Math: "Cambria Math", Special: "Arial"}.Slots()

	assert.Equal(t, []Slot{{"math", "Cambria Math"}, {"special", "Arial"}}, slots)
}

func TestFontSet_Validate(t *testing.T) {
	assert.NoError(t, DefaultFontSet().Validate())
	assert.NoError(t, FontSet{}.Validate())

	for _, bad := range []string{"A{B", "A}B", `A\B`, "100%", "A#B"} {
		err := FontSet{Main: bad}.Validate()
		assert.ErrorIs(t, err, ErrInvalidFontName, bad)
	}
}

func TestLatexPreamble(t *testing.T) {
	assert.Equal(t, "\\usepackage{amsmath}\n\\usepackage{amssymb}", LatexPreamble(false))
	assert.Equal(t, "\\usepackage{helvet}\n\\usepackage{amsmath}\n\\usepackage{amssymb}", LatexPreamble(true))
}
