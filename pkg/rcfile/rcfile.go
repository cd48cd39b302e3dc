// Package rcfile serialises a style.Style in Matplotlib's matplotlibrc
// format so the same configuration can drive Python plotting scripts
// (point MATPLOTLIBRC at the generated file or pass it to
// matplotlib.style.use).
package rcfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/germanamz/plotstyle/pkg/style"
)

// Entry is one key/value line of an rc file.
type Entry struct {
	Key   string
	Value string
}

// Entries returns the rc entries for s in a stable order: backend, general
// parameters, text rendering, PGF settings, then Extra sorted by key.
// Settings that do not apply to the active mode are omitted.
func Entries(s *style.Style) []Entry {
	entries := []Entry{
		{"backend", string(s.Backend)},
		{"figure.figsize", formatFloat(s.FigSize[0]) + ", " + formatFloat(s.FigSize[1])},
		{"figure.dpi", strconv.Itoa(s.DPI)},
		{"font.size", formatFloat(s.FontSize)},
		{"lines.linewidth", formatFloat(s.LineWidth)},
		{"font.family", s.FontFamily},
		{"text.usetex", formatBool(s.UseTeX)},
	}

	switch s.Mode {
	case style.ModeNative:
		entries = append(entries, Entry{"mathtext.fontset", s.MathTextFontset})
	case style.ModeDefaultLatex:
		entries = append(entries, Entry{"text.latex.preamble", flatten(s.LatexPreamble)})
	case style.ModeCustomPGF:
		entries = append(entries,
			Entry{"pgf.texsystem", s.PGFTexSystem},
			Entry{"pgf.rcfonts", formatBool(s.PGFRCFonts)},
			Entry{"pgf.preamble", flatten(s.PGFPreamble)},
		)
	}

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		entries = append(entries, Entry{k, s.Extra[k]})
	}

	return entries
}

// Encode writes s to w in matplotlibrc format. Values containing '#' are
// double-quoted; matplotlib drops everything after an unquoted '#'.
func Encode(w io.Writer, s *style.Style) error {
	if _, err := fmt.Fprintf(w, "## generated by plotstyle (mode: %s)\n", s.Mode); err != nil {
		return fmt.Errorf("rcfile: encode: %w", err)
	}

	for _, e := range Entries(s) {
		if e.Value == "" {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s : %s\n", e.Key, quote(e.Value)); err != nil {
			return fmt.Errorf("rcfile: encode: %w", err)
		}
	}

	return nil
}

// Marshal returns the encoded form of s.
func Marshal(s *style.Style) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, s) // bytes.Buffer writes do not fail

	return buf.Bytes()
}

// Write encodes s into path, replacing any existing file. The content is
// written to a temporary file in the same directory and renamed into place.
func Write(path string, s *style.Style) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".matplotlibrc-*")
	if err != nil {
		return fmt.Errorf("rcfile: write: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(Marshal(s)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("rcfile: write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rcfile: write: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rcfile: write: %w", err)
	}

	return nil
}

// Diff returns a unified diff from the rc file at path to the content Write
// would produce for s. A missing file diffs against empty content. The result
// is empty when nothing would change.
func Diff(path string, s *style.Style) (string, error) {
	current, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("rcfile: diff: %w", err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(Marshal(s))),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}

	result, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("rcfile: diff: %w", err)
	}

	return result, nil
}

// flatten joins preamble lines with spaces; matplotlibrc values are single
// line.
func flatten(preamble string) string {
	var parts []string
	for _, line := range strings.Split(preamble, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}

	return "False"
}

// quote wraps v in double quotes when it contains a comment character.
// matplotlib strips one pair of surrounding quotes after removing comments.
func quote(v string) string {
	if !strings.Contains(v, "#") {
		return v
	}

	return `"` + v + `"`
}
