package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"

	"github.com/germanamz/plotstyle/pkg/config"
	"github.com/germanamz/plotstyle/pkg/fontprobe"
	"github.com/germanamz/plotstyle/pkg/style"
	"github.com/germanamz/plotstyle/pkg/texengine"
)

// errChecksFailed is returned by doctor when at least one check fails.
var errChecksFailed = errors.New("doctor: checks failed")

func runDetect(_ context.Context, a *app, args []string) error {
	fs := pflag.NewFlagSet("detect", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	o := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.prepare(o); err != nil {
		return err
	}

	found, failed := a.resolver.ResolveAll()
	writeDetectReport(a.stdout, found, failed, terminalWidth(100))

	return nil
}

// writeDetectReport prints one row per supported engine, found or not,
// followed by install hints for the missing ones.
func writeDetectReport(w io.Writer, found []texengine.Detected, failed map[texengine.Engine]error, width int) {
	rows := [][]string{{"", "ENGINE", "UNICODE", "LOCATION"}}

	for _, e := range texengine.Engines() {
		idx := slices.IndexFunc(found, func(d texengine.Detected) bool { return d.Engine == e })
		if idx < 0 {
			rows = append(rows, []string{status(false), string(e), yesNo(e.Unicode()), dimStyle.Render("not found")})
			continue
		}

		d := found[idx]
		loc := truncate(d.Path, width/2)
		switch {
		case d.FromSearchPath:
			loc += dimStyle.Render(" (search path)")
		case d.PathExtended:
			loc += dimStyle.Render(" (added to PATH)")
		}
		rows = append(rows, []string{status(true), string(e), yesNo(e.Unicode()), loc})
	}

	_, _ = fmt.Fprint(w, table(rows))

	for _, e := range texengine.Engines() {
		if err, ok := failed[e]; ok {
			_, _ = fmt.Fprintf(w, "\n%s %v\n", warnStyle.Render(markWarn), err)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// check is one doctor finding.
type check struct {
	name   string
	ok     bool
	warn   bool // informational problem that does not fail the run
	detail string
}

func runDoctor(ctx context.Context, a *app, args []string) error {
	fs := pflag.NewFlagSet("doctor", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	o := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.prepare(o); err != nil {
		return err
	}

	cfg, err := a.loadConfig(o)
	if err != nil {
		writeChecks(a.stdout, []check{{name: "config", detail: err.Error()}})
		return errChecksFailed
	}

	checks := a.doctorChecks(ctx, cfg)
	writeChecks(a.stdout, checks)

	for _, c := range checks {
		if !c.ok && !c.warn {
			return errChecksFailed
		}
	}

	return nil
}

// doctorChecks builds the style for cfg and verifies what its mode needs
// from the host.
func (a *app) doctorChecks(ctx context.Context, cfg config.Config) []check {
	checks := []check{{name: "config", ok: true, detail: "valid"}}

	s, setupErr := a.buildStyle(cfg)
	checks = append(checks, check{name: "mode", ok: true, detail: s.Mode.String()})

	switch s.Mode {
	case style.ModeNative:
		return checks
	case style.ModeDefaultLatex:
		// pdflatex stands in for the latex install text.usetex needs.
		_, err := a.resolver.Resolve(texengine.PDFLaTeX)
		checks = append(checks, engineCheck("latex", nil, err))
		return checks
	}

	opts := cfg.Options()
	checks = append(checks, engineCheck("engine", s.Engine, setupErr))
	if setupErr == nil && !opts.TexSystem.Unicode() {
		checks = append(checks, check{
			name:   "unicode",
			warn:   true,
			detail: fmt.Sprintf("%s cannot load fontspec; custom fonts will not apply", opts.TexSystem),
		})
	}

	return append(checks, a.fontCheck(ctx, opts.Fonts))
}

func engineCheck(name string, det *texengine.Detected, err error) check {
	if err != nil {
		return check{name: name, detail: err.Error()}
	}

	if det == nil {
		return check{name: name, ok: true, detail: "found"}
	}

	detail := det.Path
	if det.PathExtended {
		detail += " (added to PATH)"
	}

	return check{name: name, ok: true, detail: detail}
}

func (a *app) fontCheck(ctx context.Context, fonts style.FontSet) check {
	if fonts.IsZero() {
		return check{name: "fonts", ok: true, detail: "engine defaults"}
	}

	missing, err := a.prober.Missing(ctx, fonts)
	if errors.Is(err, fontprobe.ErrFontconfigUnavailable) {
		return check{name: "fonts", warn: true, detail: "fc-list not available, fonts not checked"}
	}
	if err != nil {
		return check{name: "fonts", detail: err.Error()}
	}

	if len(missing) == 0 {
		return check{name: "fonts", ok: true, detail: fmt.Sprintf("%d configured, all installed", len(fonts.Slots()))}
	}

	detail := "missing:"
	for _, m := range missing {
		detail += fmt.Sprintf(" %s=%q", m.Role, m.Font)
	}

	return check{name: "fonts", detail: detail}
}

func writeChecks(w io.Writer, checks []check) {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		mark := status(c.ok)
		if !c.ok && c.warn {
			mark = warnStyle.Render(markWarn)
		}
		rows = append(rows, []string{mark, headingStyle.Render(c.name), c.detail})
	}

	_, _ = fmt.Fprint(w, table(rows))
}
