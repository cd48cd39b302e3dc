package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

const usage = `Usage: plotstyle <command> [flags]

Commands:
  init     Create a .plotstyle directory with a config file
  rc       Write the matplotlibrc for the configured style
  detect   Report which TeX engines can be found
  doctor   Check the engine and fonts the config needs
  explain  Describe the effective style
  demo     Render the sine and cosine example figures

Run "plotstyle <command> --help" for command flags.
`

// command is a subcommand entry point. args excludes the command name.
type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"init":    runInit,
	"rc":      runRC,
	"detect":  runDetect,
	"doctor":  runDoctor,
	"explain": runExplain,
	"demo":    runDemo,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		_, _ = fmt.Fprint(stdout, usage)
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	a := newApp(stdout, stderr)
	if err := cmd(ctx, a, args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "%s %v\n", errorStyle.Render("error:"), err)
		return 1
	}

	return 0
}
