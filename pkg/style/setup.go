package style

import (
	"fmt"
	"log/slog"

	"github.com/germanamz/plotstyle/pkg/texengine"
)

// Options select the rendering mode and its fonts.
type Options struct {
	UseLatex        bool
	UseDefaultLatex bool
	// LatexSansText switches body text to sans-serif in ModeDefaultLatex.
	LatexSansText bool
	// TexSystem is the engine used in ModeCustomPGF. Empty means
	// texengine.DefaultEngine.
	TexSystem texengine.Engine
	Fonts     FontSet
	// MathTextCM selects Computer Modern math glyphs in ModeNative.
	MathTextCM bool
}

// ResolveMode maps the two mode flags onto a Mode. UseDefaultLatex is only
// meaningful together with UseLatex and is otherwise ignored.
func ResolveMode(useLatex, useDefaultLatex bool) Mode {
	switch {
	case !useLatex:
		return ModeNative
	case useDefaultLatex:
		return ModeDefaultLatex
	default:
		return ModeCustomPGF
	}
}

// EngineResolver locates a TeX engine.
type EngineResolver interface {
	Resolve(e texengine.Engine) (texengine.Detected, error)
}

// Configurator applies Options to a Style.
type Configurator struct {
	resolver EngineResolver
	log      *slog.Logger
}

// NewConfigurator returns a Configurator that resolves engines with r and
// reports ignored options on log. A nil r uses texengine.NewResolver and a
// nil log uses slog.Default.
func NewConfigurator(r EngineResolver, log *slog.Logger) *Configurator {
	if r == nil {
		r = texengine.NewResolver()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Configurator{resolver: r, log: log}
}

// Setup configures the text rendering of s according to opts. Settings
// owned by the other modes (font family, preambles, fonts, engine) are reset,
// so one Style can be reconfigured repeatedly. The math text fontset is only
// changed when MathTextCM asks for it.
//
// In ModeCustomPGF the backend is switched before the engine is resolved;
// if resolution fails the error is returned and s keeps the PGF backend.
func (c *Configurator) Setup(s *Style, opts Options) error {
	mode := ResolveMode(opts.UseLatex, opts.UseDefaultLatex)

	switch mode {
	case ModeNative:
		c.setupNative(s, opts)
		return nil
	case ModeDefaultLatex:
		c.setupDefaultLatex(s, opts)
		return nil
	default:
		return c.setupPGF(s, opts)
	}
}

func (c *Configurator) setupNative(s *Style, opts Options) {
	if opts.UseDefaultLatex {
		c.log.Warn("use_default_latex ignored because use_latex is false")
	}
	if !opts.Fonts.IsZero() {
		c.log.Warn("custom fonts ignored outside custom PGF mode", "mode", ModeNative)
	}

	s.Mode = ModeNative
	s.Backend = BackendDefault
	s.UseTeX = false
	s.FontFamily = FamilySansSerif
	s.LatexPreamble = ""
	s.PGFPreamble = ""
	s.Fonts = FontSet{}
	s.Engine = nil

	if opts.MathTextCM {
		s.MathTextFontset = MathTextCM
	}

	c.log.Debug("style configured", "mode", s.Mode, "mathtext", s.MathTextFontset)
}

func (c *Configurator) setupDefaultLatex(s *Style, opts Options) {
	if opts.MathTextCM {
		c.log.Warn("mathtext_cm ignored because use_latex is true")
	}
	if !opts.Fonts.IsZero() {
		c.log.Warn("custom fonts ignored because use_default_latex is true", "mode", ModeDefaultLatex)
	}

	s.Mode = ModeDefaultLatex
	s.Backend = BackendDefault
	s.UseTeX = true
	s.PGFPreamble = ""
	s.Fonts = FontSet{}
	s.Engine = nil

	s.FontFamily = FamilySerif
	if opts.LatexSansText {
		s.FontFamily = FamilySansSerif
	}
	s.LatexPreamble = LatexPreamble(opts.LatexSansText)

	c.log.Debug("style configured", "mode", s.Mode, "family", s.FontFamily)
}

func (c *Configurator) setupPGF(s *Style, opts Options) error {
	if opts.MathTextCM {
		c.log.Warn("mathtext_cm ignored because use_latex is true")
	}

	if err := opts.Fonts.Validate(); err != nil {
		return fmt.Errorf("style: setup pgf: %w", err)
	}

	engine, err := texengine.ParseEngine(string(opts.TexSystem))
	if err != nil {
		return fmt.Errorf("style: setup pgf: %w", err)
	}

	s.Mode = ModeCustomPGF
	s.Backend = BackendPGF

	det, err := c.resolver.Resolve(engine)
	if err != nil {
		return fmt.Errorf("style: setup pgf: %w", err)
	}

	if !engine.Unicode() {
		c.log.Warn("fontspec requires lualatex or xelatex; font commands will not compile", "engine", engine)
	}
	if det.PathExtended {
		c.log.Info("tex engine directory added to PATH", "engine", engine, "dir", det.Dir)
	}

	s.UseTeX = true
	s.LatexPreamble = ""
	s.PGFRCFonts = false
	s.PGFTexSystem = string(engine)
	s.PGFPreamble = PGFPreamble(opts.Fonts)
	s.Fonts = opts.Fonts
	s.Engine = &det

	c.log.Debug("style configured", "mode", s.Mode, "engine", engine, "path", det.Path)

	return nil
}
