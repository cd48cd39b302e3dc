package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/germanamz/plotstyle/pkg/config"
	"github.com/germanamz/plotstyle/pkg/rcfile"
	"github.com/germanamz/plotstyle/pkg/styledir"
)

func runRC(_ context.Context, a *app, args []string) error {
	fs := pflag.NewFlagSet("rc", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	o := addCommonFlags(fs)
	out := fs.StringP("out", "o", "", "matplotlibrc path (default: output.rc_file or <dir>/matplotlibrc)")
	printOnly := fs.Bool("print", false, "print to stdout instead of writing a file")
	diff := fs.Bool("diff", false, "show the changes against the existing file without writing")
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

	s, err := a.buildStyle(cfg)
	if err != nil {
		return err
	}

	if *printOnly {
		return rcfile.Encode(a.stdout, s)
	}

	path := rcPath(o, cfg, *out)

	if *diff {
		d, err := rcfile.Diff(path, s)
		if err != nil {
			return err
		}
		if d == "" {
			_, _ = fmt.Fprintf(a.stdout, "%s is up to date\n", path)
			return nil
		}
		_, _ = fmt.Fprint(a.stdout, d)

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("rc: %w", err)
	}

	if err := rcfile.Write(path, s); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "%s wrote %s (mode: %s)\n", okStyle.Render(markOK), path, s.Mode)

	return nil
}

func rcPath(o *commonOpts, cfg config.Config, flag string) string {
	switch {
	case flag != "":
		return flag
	case cfg.Output.RCFile != "":
		return cfg.Output.RCFile
	default:
		return styledir.New(o.dir).RCPath()
	}
}
