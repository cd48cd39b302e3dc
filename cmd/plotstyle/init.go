package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/germanamz/plotstyle/pkg/config"
	"github.com/germanamz/plotstyle/pkg/styledir"
)

func runInit(_ context.Context, a *app, args []string) error {
	fs := pflag.NewFlagSet("init", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	o := addCommonFlags(fs)
	defaults := fs.Bool("defaults", false, "write the default config without prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.prepare(o); err != nil {
		return err
	}

	d := styledir.New(o.dir)
	if d.Exists() {
		if err := styledir.EnsureStructure(d); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.stdout, "%s already exists, structure verified\n", d.Root())

		return nil
	}

	cfg := config.Default()
	if !*defaults && a.interactive {
		var err error
		if cfg, err = runWizard(); err != nil {
			return fmt.Errorf("init: %w", err)
		}
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := styledir.BootstrapWithConfig(d, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "%s created %s\n", okStyle.Render(markOK), d.ConfigPath())

	return nil
}
