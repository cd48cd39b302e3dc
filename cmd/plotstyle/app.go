package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/germanamz/plotstyle/pkg/config"
	"github.com/germanamz/plotstyle/pkg/fontprobe"
	"github.com/germanamz/plotstyle/pkg/render"
	"github.com/germanamz/plotstyle/pkg/style"
	"github.com/germanamz/plotstyle/pkg/styledir"
	"github.com/germanamz/plotstyle/pkg/texengine"
)

// engineResolver is the subset of *texengine.Resolver the commands use.
type engineResolver interface {
	Resolve(e texengine.Engine) (texengine.Detected, error)
	ResolveAll() ([]texengine.Detected, map[texengine.Engine]error)
}

// app carries the dependencies shared by every command.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	level    *slog.LevelVar
	log      *slog.Logger
	resolver engineResolver
	prober   *fontprobe.Prober
	compiler render.Compiler
	// interactive reports whether prompts may be shown.
	interactive bool
}

func newApp(stdout, stderr io.Writer) *app {
	level := new(slog.LevelVar)

	return &app{
		stdout:      stdout,
		stderr:      stderr,
		level:       level,
		log:         slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		resolver:    texengine.NewResolver(),
		prober:      fontprobe.New(nil),
		compiler:    render.ExecCompiler{},
		interactive: isTerminal(os.Stdin),
	}
}

// commonOpts are the flags every command accepts.
type commonOpts struct {
	dir     string
	config  string
	env     string
	verbose bool
}

func addCommonFlags(fs *pflag.FlagSet) *commonOpts {
	o := &commonOpts{}
	fs.StringVar(&o.dir, "dir", ".plotstyle", "path to the .plotstyle directory")
	fs.StringVar(&o.config, "config", "", "path to the config file (default: <dir>/config.yaml)")
	fs.StringVar(&o.env, "env", ".env", "path to .env file (ignored if missing)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log debug messages")

	return o
}

// prepare applies the common flags: it sets the log level and loads the
// .env file.
func (a *app) prepare(o *commonOpts) error {
	if o.verbose {
		a.level.Set(slog.LevelDebug)
	}

	return loadDotEnv(o.env)
}

// loadDotEnv loads environment variables from path. If the file does not exist
// it is silently ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// loadConfig returns the configuration selected by o. An explicit --config
// must exist; otherwise <dir>/config.yaml is used when present (after
// migrating a legacy plotstyle.yaml) and the defaults when not.
func (a *app) loadConfig(o *commonOpts) (config.Config, error) {
	path := o.config

	if path == "" {
		d := styledir.New(o.dir)

		moved, err := styledir.MigrateLegacyConfig(d)
		if err != nil {
			return config.Config{}, err
		}
		if moved {
			a.log.Info("migrated legacy config", "from", styledir.LegacyConfigName, "to", d.ConfigPath())
		}

		path = d.ConfigPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			a.log.Debug("no config file, using defaults", "path", path)
			return config.Default(), nil
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", path, err)
	}

	a.log.Debug("loaded config", "path", path)

	return cfg, nil
}

// buildStyle sets the general parameters of cfg on a fresh Style and then
// configures its text rendering. On an engine error the partially
// configured Style is returned with the error.
func (a *app) buildStyle(cfg config.Config) (*style.Style, error) {
	s := style.New()
	s.SetGeneralParams(cfg.Params())

	err := style.NewConfigurator(a.resolver, a.log).Setup(s, cfg.Options())

	return s, err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// terminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
	if err != nil || w <= 0 {
		return fallback
	}

	return w
}
