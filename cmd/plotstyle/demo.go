package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/germanamz/plotstyle/pkg/render"
	"github.com/germanamz/plotstyle/pkg/style"
	"github.com/germanamz/plotstyle/pkg/styledir"
	"github.com/germanamz/plotstyle/pkg/texengine"
)

const demoSamples = 100

// demoFigure is one of the example figures.
type demoFigure struct {
	name string
	fn   func(float64) float64
	// label is the function name used in axis labels and legends.
	label string
	title string
}

var demoFigures = []demoFigure{
	{name: "sine", fn: math.Sin, label: "sin", title: "Sine Function"},
	{name: "cosine", fn: math.Cos, label: "cos", title: "Cosine Function"},
}

func runDemo(ctx context.Context, a *app, args []string) error {
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	o := addCommonFlags(fs)
	outDir := fs.String("out", ".", "directory for the rendered figures")
	format := fs.String("format", "", "output format (default: pdf for the pgf backend, png otherwise)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.prepare(o); err != nil {
		return err
	}

	cfg, err := a.loadConfig(o)
	if err != nil {
		return err
	}

	ext := strings.TrimPrefix(strings.ToLower(*format), ".")

	s, err := a.buildStyle(cfg)
	if err != nil {
		// A bare PGF picture needs no engine.
		if !errors.Is(err, texengine.ErrEngineNotFound) || ext != "pgf" {
			return err
		}
		a.log.Warn("engine not found, writing pgf only", "err", err)
	}

	if ext == "" {
		ext = "png"
		if s.Backend == style.BackendPGF {
			ext = "pdf"
		}
	}

	if err := os.MkdirAll(*outDir, 0o750); err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	rcfg := render.Config{KeepBuild: cfg.Output.KeepBuild}
	if d := styledir.New(o.dir); d.Exists() {
		rcfg.BuildDir = d.BuildDir()
	}
	r := render.New(a.compiler, rcfg, a.log)

	for _, fig := range demoFigures {
		p, err := demoPlot(s, fig)
		if err != nil {
			return err
		}

		path := filepath.Join(*outDir, fig.name+"."+ext)
		if err := r.Save(ctx, p, s, path); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.stdout, "%s %s\n", okStyle.Render(markOK), path)
	}

	return nil
}

// demoPlot draws fig over [0, 2π] with s applied.
func demoPlot(s *style.Style, fig demoFigure) (*plot.Plot, error) {
	p := plot.New()
	render.Apply(p, s)

	txt := demoText(s, fig)
	p.Title.Text = txt.title
	p.X.Label.Text = txt.xlabel
	p.Y.Label.Text = txt.ylabel

	pts := make(plotter.XYs, demoSamples)
	for i := range pts {
		x := 2 * math.Pi * float64(i) / float64(demoSamples-1)
		pts[i].X = x
		pts[i].Y = fig.fn(x)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("demo: %s: %w", fig.name, err)
	}
	line.LineStyle = render.LineStyle(s)

	p.Add(line)
	p.Legend.Add(txt.legend, line)

	return p, nil
}

type figureText struct {
	title, xlabel, ylabel, legend string
}

// demoText returns the labels for fig. Full LaTeX math is only used when a
// TeX engine typesets the figure; the in-process math renderer gets
// single-symbol math.
func demoText(s *style.Style, fig demoFigure) figureText {
	fn, title := fig.label, fig.title

	switch {
	case s.Backend == style.BackendPGF:
		return figureText{
			title:  title + " (LaTeX PGF)",
			xlabel: `$x$`,
			ylabel: fmt.Sprintf(`$\%s(x)$`, fn),
			legend: fmt.Sprintf(`$\%s(x)$`, fn),
		}
	case s.UseTeX || s.MathTextFontset == style.MathTextCM:
		return figureText{
			title:  title,
			xlabel: `Argument $x$`,
			ylabel: `Value $y$`,
			legend: fn + "(x)",
		}
	default:
		return figureText{
			title:  title,
			xlabel: "Argument x",
			ylabel: "Value y",
			legend: fn + "(x)",
		}
	}
}
