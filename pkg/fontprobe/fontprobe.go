// Package fontprobe checks whether font families are installed on the host
// by asking fontconfig (fc-list). It backs the allow-list check for the
// custom PGF font set; nothing in pkg/style calls it implicitly.
package fontprobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"sort"
	"strings"

	"github.com/germanamz/plotstyle/pkg/style"
)

// ErrFontconfigUnavailable is returned when fc-list cannot be run.
var ErrFontconfigUnavailable = errors.New("fontprobe: fontconfig unavailable")

// RunFunc runs a program and returns its standard output.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Prober lists installed font families.
type Prober struct {
	run RunFunc
}

// New returns a Prober that runs fc-list through run. A nil run executes the
// real binary.
func New(run RunFunc) *Prober {
	if run == nil {
		run = runCommand
	}

	return &Prober{run: run}
}

// Families returns the installed family names, lowercased and sorted.
// fc-list prints one line per face with comma separated localized names.
func (p *Prober) Families(ctx context.Context) ([]string, error) {
	out, err := p.run(ctx, "fc-list", ":", "family")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontconfigUnavailable, err)
	}

	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(out), "\n") {
		for _, name := range strings.Split(line, ",") {
			name = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, `\-`, "-")))
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	families := make([]string, 0, len(seen))
	for name := range seen {
		families = append(families, name)
	}
	sort.Strings(families)

	return families, nil
}

// Missing returns the populated slots of fonts whose family is not
// installed. Matching ignores case.
func (p *Prober) Missing(ctx context.Context, fonts style.FontSet) ([]style.Slot, error) {
	families, err := p.Families(ctx)
	if err != nil {
		return nil, err
	}

	installed := make(map[string]struct{}, len(families))
	for _, f := range families {
		installed[f] = struct{}{}
	}

	var missing []style.Slot
	for _, s := range fonts.Slots() {
		if _, ok := installed[strings.ToLower(s.Font)]; !ok {
			missing = append(missing, s)
		}
	}

	return missing, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...) //nolint:gosec // fixed program name

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}
