// Package render applies a style.Style to gonum/plot figures and saves them.
//
// Raster and vector formats are produced in-process. When the style selects
// the PGF backend the figure is emitted as a PGF picture with its text left
// as raw LaTeX; saving to .pdf then wraps the picture in a document carrying
// the style's preamble and compiles it with the configured TeX engine.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgtex"

	"github.com/germanamz/plotstyle/pkg/style"
)

// Title text is scaled like Matplotlib's "large" relative size.
const titleScale = 1.2

var (
	// ErrUnsupportedFormat is returned for file extensions the active
	// backend cannot produce.
	ErrUnsupportedFormat = errors.New("render: unsupported format")
	// ErrInvalidSize is returned when the figure size or DPI cannot be
	// rasterised.
	ErrInvalidSize = errors.New("render: invalid figure size")
)

// Apply copies the font size, family and text handler of s onto the title,
// axis labels, tick labels and legend of p.
func Apply(p *plot.Plot, s *style.Style) {
	handler := TextHandler(s)
	f := Font(s)

	for _, ts := range []*text.Style{
		&p.Title.TextStyle,
		&p.X.Label.TextStyle,
		&p.Y.Label.TextStyle,
		&p.X.Tick.Label,
		&p.Y.Tick.Label,
		&p.Legend.TextStyle,
	} {
		ts.Font = f
		ts.Handler = handler
	}

	p.Title.TextStyle.Font.Size = vg.Points(s.FontSize * titleScale)
	p.TextHandler = handler
}

// Font returns the base font for s.
func Font(s *style.Style) font.Font {
	variant := font.Variant("Sans")
	if s.FontFamily == style.FamilySerif {
		variant = "Serif"
	}

	return font.Font{
		Typeface: "Liberation",
		Variant:  variant,
		Size:     vg.Points(s.FontSize),
	}
}

// TextHandler picks how text is laid out. Math is typeset in-process when
// the style asks for TeX or Computer Modern math text, except on the PGF
// backend where strings must reach the TeX engine untouched.
func TextHandler(s *style.Style) text.Handler {
	if s.Backend == style.BackendPGF {
		return text.Plain{Fonts: font.DefaultCache}
	}

	if s.UseTeX || s.MathTextFontset == style.MathTextCM {
		return text.Latex{Fonts: font.DefaultCache, DPI: float64(s.DPI)}
	}

	return text.Plain{Fonts: font.DefaultCache}
}

// LineStyle returns the default line style with the configured width.
func LineStyle(s *style.Style) draw.LineStyle {
	ls := plotter.DefaultLineStyle
	ls.Width = vg.Points(s.LineWidth)

	return ls
}

// Size returns the figure size of s.
func Size(s *style.Style) (vg.Length, vg.Length) {
	return vg.Length(s.FigSize[0]) * vg.Inch, vg.Length(s.FigSize[1]) * vg.Inch
}

// saveInProcess writes formats gonum can produce directly.
func saveInProcess(p *plot.Plot, s *style.Style, path string) error {
	w, h := Size(s)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".jpg", ".jpeg":
		if s.DPI <= 0 {
			return fmt.Errorf("%w: dpi %d", ErrInvalidSize, s.DPI)
		}

		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(s.DPI))
		p.Draw(draw.New(c))

		return writeFile(path, func(f *os.File) error {
			if ext == ".png" {
				png := vgimg.PngCanvas{Canvas: c}
				_, err := png.WriteTo(f)
				return err
			}
			jpg := vgimg.JpegCanvas{Canvas: c}
			_, err := jpg.WriteTo(f)
			return err
		})
	case ".pdf", ".svg", ".eps", ".tif", ".tiff":
		if err := p.Save(w, h, path); err != nil {
			return fmt.Errorf("render: save %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("%w %q for backend %s", ErrUnsupportedFormat, ext, s.Backend)
	}
}

// WritePGF writes p as a bare PGF picture suitable for \input.
func WritePGF(p *plot.Plot, s *style.Style, path string) error {
	w, h := Size(s)

	c := vgtex.New(w, h)
	p.Draw(draw.New(c))

	return writeFile(path, func(f *os.File) error {
		_, err := c.WriteTo(f)
		return err
	})
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path) //nolint:gosec // output path is caller-provided
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}

	return nil
}
