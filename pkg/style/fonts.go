package style

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFontName is returned for font names that would break out of a
// TeX argument.
var ErrInvalidFontName = errors.New("style: invalid font name")

// FontSet names the system fonts used per text role and math alphabet in
// ModeCustomPGF. Empty entries are left to the TeX defaults.
type FontSet struct {
	Main    string // body text
	Sans    string // sans-serif text
	Math    string // math italic and symbols
	MathRM  string // \mathrm
	MathCal string // \mathcal
	Special string // \spchar{...}
}

// DefaultFontSet returns a populated font set matching common Office fonts.
func DefaultFontSet() FontSet {
	return FontSet{
		Main:    "Aptos",
		Sans:    "Aptos",
		Math:    "Cambria Math",
		MathRM:  "Cambria",
		MathCal: "Brush Script MT",
		Special: "Arial",
	}
}

// IsZero reports whether no slot is populated.
func (f FontSet) IsZero() bool {
	return f == FontSet{}
}

// Validate rejects font names containing TeX special characters.
func (f FontSet) Validate() error {
	for _, s := range f.Slots() {
		if strings.ContainsAny(s.Font, "{}\\%#$^~\n") {
			return fmt.Errorf("%w: %s font %q", ErrInvalidFontName, s.Role, s.Font)
		}
	}

	return nil
}

// Slot is a single populated font entry.
type Slot struct {
	Role string
	Font string
}

// Slots returns the populated entries in preamble order.
func (f FontSet) Slots() []Slot {
	all := []Slot{
		{"main", f.Main},
		{"sans", f.Sans},
		{"math", f.Math},
		{"mathrm", f.MathRM},
		{"mathcal", f.MathCal},
		{"special", f.Special},
	}

	out := all[:0]
	for _, s := range all {
		if strings.TrimSpace(s.Font) != "" {
			out = append(out, Slot{Role: s.Role, Font: strings.TrimSpace(s.Font)})
		}
	}

	return out
}

// pgfBasePackages are loaded ahead of the font commands. ctex provides CJK
// support on top of fontspec.
var pgfBasePackages = []string{
	`\usepackage{amsmath}`,
	`\usepackage{fontspec}`,
	`\usepackage{unicode-math}`,
	`\usepackage[UTF8]{ctex}`,
}

// PGFPreamble builds the preamble for ModeCustomPGF: the base packages
// followed by one font command per populated slot of f.
func PGFPreamble(f FontSet) string {
	lines := append([]string(nil), pgfBasePackages...)

	for _, s := range f.Slots() {
		switch s.Role {
		case "main":
			lines = append(lines, `\setmainfont{`+s.Font+`}`)
		case "sans":
			lines = append(lines, `\setsansfont{`+s.Font+`}`)
		case "math":
			lines = append(lines, `\setmathfont{`+s.Font+`}`)
		case "mathrm":
			lines = append(lines, `\setmathrm{`+s.Font+`}`)
		case "mathcal":
			lines = append(lines, `\setmathfont[range=\mathcal]{`+s.Font+`}`)
		case "special":
			lines = append(lines,
				`\newfontfamily\specialfont{`+s.Font+`}`,
				`\newcommand{\spchar}[1]{\text{\specialfont #1}}`,
			)
		}
	}

	return strings.Join(lines, "\n")
}

// LatexPreamble builds the preamble for ModeDefaultLatex. With sansText the
// body text switches to Helvetica while math stays serif.
func LatexPreamble(sansText bool) string {
	lines := []string{`\usepackage{amsmath}`, `\usepackage{amssymb}`}
	if sansText {
		lines = append([]string{`\usepackage{helvet}`}, lines...)
	}

	return strings.Join(lines, "\n")
}
