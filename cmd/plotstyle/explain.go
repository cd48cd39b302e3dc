package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/pflag"

	"github.com/germanamz/plotstyle/pkg/rcfile"
	"github.com/germanamz/plotstyle/pkg/style"
)

func runExplain(_ context.Context, a *app, args []string) error {
	fs := pflag.NewFlagSet("explain", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	o := addCommonFlags(fs)
	raw := fs.Bool("raw", false, "print Markdown without terminal formatting")
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

	s, setupErr := a.buildStyle(cfg)
	md := explainMarkdown(s, setupErr)

	if *raw {
		_, _ = fmt.Fprint(a.stdout, md)
		return nil
	}

	_, _ = fmt.Fprintln(a.stdout, renderMarkdown(md, terminalWidth(100)))

	return nil
}

// renderMarkdown converts markdown text to terminal-formatted output. Falls
// back to the source if the renderer is unavailable.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}

	return strings.TrimRight(out, "\n")
}

var modeSummary = map[style.Mode]string{
	style.ModeNative: "Text is laid out by the plotting library without LaTeX. " +
		"Math uses DejaVu Sans unless Computer Modern was requested.",
	style.ModeDefaultLatex: "Text goes through the plotting library's built-in LaTeX support " +
		"with the standard Computer Modern fonts.",
	style.ModeCustomPGF: "Figures are written through the PGF backend and typeset by an " +
		"external TeX engine, which loads the configured fonts with fontspec.",
}

// explainMarkdown describes the effective style s. setupErr is the error
// returned while configuring it, if any.
func explainMarkdown(s *style.Style, setupErr error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Plot style: %s\n\n%s\n\n", s.Mode, modeSummary[s.Mode])

	if setupErr != nil {
		fmt.Fprintf(&b, "> **Setup failed:** %s\n\n", setupErr)
	}

	b.WriteString("## Figure\n\n| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Size | %s × %s in |\n", formatNumber(s.FigSize[0]), formatNumber(s.FigSize[1]))
	fmt.Fprintf(&b, "| Font size | %s pt |\n", formatNumber(s.FontSize))
	fmt.Fprintf(&b, "| DPI | %d |\n", s.DPI)
	fmt.Fprintf(&b, "| Line width | %s pt |\n", formatNumber(s.LineWidth))
	fmt.Fprintf(&b, "| Font family | %s |\n\n", s.FontFamily)

	if s.Mode == style.ModeCustomPGF {
		b.WriteString("## Engine\n\n")
		if s.Engine != nil {
			fmt.Fprintf(&b, "`%s` at `%s`", s.Engine.Engine, s.Engine.Path)
			if s.Engine.PathExtended {
				fmt.Fprintf(&b, " (`%s` appended to PATH)", s.Engine.Dir)
			}
			b.WriteString("\n\n")
		} else {
			fmt.Fprintf(&b, "`%s` (not resolved)\n\n", s.PGFTexSystem)
		}

		b.WriteString("## Fonts\n\n")
		slots := s.Fonts.Slots()
		if len(slots) == 0 {
			b.WriteString("Engine defaults.\n\n")
		}
		for _, slot := range slots {
			fmt.Fprintf(&b, "- **%s**: %s\n", slot.Role, slot.Font)
		}
		if len(slots) > 0 {
			b.WriteString("\n")
		}
	}

	if preamble := activePreamble(s); preamble != "" {
		fmt.Fprintf(&b, "## Preamble\n\n```latex\n%s\n```\n\n", preamble)
	}

	b.WriteString("## matplotlibrc\n\n```\n")
	for _, e := range rcfile.Entries(s) {
		if e.Value != "" {
			fmt.Fprintf(&b, "%s : %s\n", e.Key, e.Value)
		}
	}
	b.WriteString("```\n")

	return b.String()
}

func activePreamble(s *style.Style) string {
	switch s.Mode {
	case style.ModeDefaultLatex:
		return s.LatexPreamble
	case style.ModeCustomPGF:
		return s.PGFPreamble
	default:
		return ""
	}
}
