package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"

	"github.com/germanamz/plotstyle/pkg/style"
)

const (
	pgfName = "figure.pgf"
	texName = "figure.tex"
	pdfName = "figure.pdf"
)

// Compiler turns a .tex file into a PDF in outDir.
type Compiler interface {
	Compile(ctx context.Context, engine, texFile, outDir string) error
}

// ExecCompiler runs the TeX engine as a subprocess.
type ExecCompiler struct{}

// Compile runs engine in nonstop mode with outDir as both working and output
// directory. Relative paths are resolved against the caller's working
// directory. On failure the tail of the engine log is included in the error.
func (ExecCompiler) Compile(ctx context.Context, engine, texFile, outDir string) error {
	outDir, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("render: compile: %w", err)
	}
	if texFile, err = filepath.Abs(texFile); err != nil {
		return fmt.Errorf("render: compile: %w", err)
	}

	cmd := osexec.CommandContext(ctx, engine, //nolint:gosec // engine comes from texengine resolution
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory="+outDir,
		texFile,
	)
	cmd.Dir = outDir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		logPath := strings.TrimSuffix(texFile, filepath.Ext(texFile)) + ".log"
		detail := tail(logPath, out.String(), 20)

		return fmt.Errorf("render: %s failed: %w\n%s", filepath.Base(engine), err, detail)
	}

	return nil
}

// Config controls PGF compilation.
type Config struct {
	// BuildDir holds per-figure work directories. Empty uses the system
	// temp directory.
	BuildDir string
	// KeepBuild leaves the work directory in place after compiling.
	KeepBuild bool
}

// Renderer saves figures according to a Style.
type Renderer struct {
	compiler Compiler
	cfg      Config
	log      *slog.Logger
}

// New creates a Renderer. A nil compiler uses ExecCompiler and a nil log
// uses slog.Default.
func New(compiler Compiler, cfg Config, log *slog.Logger) *Renderer {
	if compiler == nil {
		compiler = ExecCompiler{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Renderer{compiler: compiler, cfg: cfg, log: log}
}

// Save writes p to path. The backend of s selects the pipeline: the default
// backend renders in-process by extension; the PGF backend accepts .pgf (raw
// picture) and .pdf (compiled with s.PGFTexSystem).
func (r *Renderer) Save(ctx context.Context, p *plot.Plot, s *style.Style, path string) error {
	if s.Backend != style.BackendPGF {
		return saveInProcess(p, s, path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pgf", ".tex":
		return WritePGF(p, s, path)
	case ".pdf":
		return r.compilePDF(ctx, p, s, path)
	default:
		return fmt.Errorf("%w %q for backend %s", ErrUnsupportedFormat, ext, s.Backend)
	}
}

func (r *Renderer) compilePDF(ctx context.Context, p *plot.Plot, s *style.Style, path string) error {
	work, err := r.workDir()
	if err != nil {
		return err
	}

	if r.cfg.KeepBuild {
		r.log.Info("keeping pgf build directory", "dir", work)
	} else {
		defer func() { _ = os.RemoveAll(work) }()
	}

	if err := WritePGF(p, s, filepath.Join(work, pgfName)); err != nil {
		return err
	}

	doc := Document(s, pgfName)
	texPath := filepath.Join(work, texName)
	if err := os.WriteFile(texPath, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("render: write document: %w", err)
	}

	engine := enginePath(s)
	r.log.Debug("compiling figure", "engine", engine, "dir", work)

	if err := r.compiler.Compile(ctx, engine, texPath, work); err != nil {
		return err
	}

	if err := copyFile(filepath.Join(work, pdfName), path); err != nil {
		return fmt.Errorf("render: collect pdf: %w", err)
	}

	return nil
}

func (r *Renderer) workDir() (string, error) {
	base := r.cfg.BuildDir
	if base != "" {
		if err := os.MkdirAll(base, 0o750); err != nil {
			return "", fmt.Errorf("render: create build dir: %w", err)
		}
	}

	dir, err := os.MkdirTemp(base, "figure-*")
	if err != nil {
		return "", fmt.Errorf("render: create work dir: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("render: create work dir: %w", err)
	}

	return abs, nil
}

// Document returns a LaTeX document that typesets the PGF picture in
// pgfFile on a page sized to the figure.
func Document(s *style.Style, pgfFile string) string {
	var b strings.Builder

	b.WriteString("\\documentclass[12pt]{article}\n")
	b.WriteString("\\usepackage{pgf}\n")
	if s.PGFPreamble != "" {
		b.WriteString(s.PGFPreamble)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\\usepackage[papersize={%sin,%sin},margin=0in]{geometry}\n",
		strconv.FormatFloat(s.FigSize[0], 'f', -1, 64),
		strconv.FormatFloat(s.FigSize[1], 'f', -1, 64))
	b.WriteString("\\pagestyle{empty}\n")
	b.WriteString("\\begin{document}\n")
	fmt.Fprintf(&b, "\\noindent\\input{%s}\n", pgfFile)
	b.WriteString("\\end{document}\n")

	return b.String()
}

// enginePath prefers the executable resolved during setup.
func enginePath(s *style.Style) string {
	if s.Engine != nil && s.Engine.Path != "" {
		return s.Engine.Path
	}

	return s.PGFTexSystem
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path inside our work dir
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst) //nolint:gosec // output path is caller-provided
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// tail returns the last n lines of the file at path, or of fallback when the
// file cannot be read.
func tail(path, fallback string, n int) string {
	text := fallback
	if data, err := os.ReadFile(path); err == nil { //nolint:gosec // engine log in our work dir
		text = string(data)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "\n")
}
