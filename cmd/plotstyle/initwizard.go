package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/germanamz/plotstyle/pkg/config"
	"github.com/germanamz/plotstyle/pkg/style"
	"github.com/germanamz/plotstyle/pkg/texengine"
)

// wizardAnswers holds the raw form values. Numbers are kept as strings so
// huh inputs can bind to them directly.
type wizardAnswers struct {
	Mode      style.Mode
	Width     string
	Height    string
	FontSize  string
	DPI       string
	LineWidth string

	MathTextCM    bool
	LatexSansText bool

	TexSystem      string
	UsePresetFonts bool
	Fonts          config.FontConfig
}

func defaultAnswers() wizardAnswers {
	p := style.DefaultParams()

	return wizardAnswers{
		Mode:      style.ModeNative,
		Width:     formatNumber(p.FigSize[0]),
		Height:    formatNumber(p.FigSize[1]),
		FontSize:  formatNumber(p.FontSize),
		DPI:       strconv.Itoa(p.DPI),
		LineWidth: formatNumber(p.LineWidth),
		TexSystem: string(texengine.DefaultEngine),
	}
}

func runWizard() (config.Config, error) {
	ans := defaultAnswers()

	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[style.Mode]().
			Title("Text rendering").
			Options(
				huh.NewOption("Native (no LaTeX)", style.ModeNative),
				huh.NewOption("LaTeX with default fonts", style.ModeDefaultLatex),
				huh.NewOption("LaTeX through PGF with custom fonts", style.ModeCustomPGF),
			).
			Value(&ans.Mode),
	), huh.NewGroup(
		huh.NewInput().Title("Figure width (inches)").Value(&ans.Width).Validate(validatePositiveFloat),
		huh.NewInput().Title("Figure height (inches)").Value(&ans.Height).Validate(validatePositiveFloat),
		huh.NewInput().Title("Font size (points)").Value(&ans.FontSize).Validate(validatePositiveFloat),
		huh.NewInput().Title("DPI").Value(&ans.DPI).Validate(validatePositiveInt),
		huh.NewInput().Title("Line width (points)").Value(&ans.LineWidth).Validate(validatePositiveFloat),
	)).Run(); err != nil {
		return config.Config{}, err
	}

	var group *huh.Group
	switch ans.Mode {
	case style.ModeNative:
		group = huh.NewGroup(
			huh.NewConfirm().Title("Use Computer Modern for math text?").Value(&ans.MathTextCM),
		)
	case style.ModeDefaultLatex:
		group = huh.NewGroup(
			huh.NewConfirm().Title("Use sans-serif body text?").Value(&ans.LatexSansText),
		)
	default:
		opts := make([]huh.Option[string], 0, len(texengine.Engines()))
		for _, e := range texengine.Engines() {
			opts = append(opts, huh.NewOption(string(e), string(e)))
		}
		group = huh.NewGroup(
			huh.NewSelect[string]().Title("TeX engine").Options(opts...).Value(&ans.TexSystem),
			huh.NewConfirm().Title("Start from the preset font set?").Value(&ans.UsePresetFonts),
		)
	}

	if err := huh.NewForm(group).Run(); err != nil {
		return config.Config{}, err
	}

	if ans.Mode == style.ModeCustomPGF {
		if ans.UsePresetFonts {
			ans.Fonts = config.FontConfigFrom(style.DefaultFontSet())
		}

		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Main font (empty = engine default)").Value(&ans.Fonts.Main).Validate(validateFont),
			huh.NewInput().Title("Sans font").Value(&ans.Fonts.Sans).Validate(validateFont),
			huh.NewInput().Title("Math font").Value(&ans.Fonts.Math).Validate(validateFont),
			huh.NewInput().Title(`\mathrm font`).Value(&ans.Fonts.MathRM).Validate(validateFont),
			huh.NewInput().Title(`\mathcal font`).Value(&ans.Fonts.MathCal).Validate(validateFont),
			huh.NewInput().Title(`\spchar font`).Value(&ans.Fonts.Special).Validate(validateFont),
		)).Run(); err != nil {
			return config.Config{}, err
		}
	}

	return ans.config()
}

// config converts the answers into a Config and validates it.
func (ans wizardAnswers) config() (config.Config, error) {
	cfg := config.Default()

	var err error
	parse := func(s string, dst *float64) {
		if err != nil {
			return
		}
		*dst, err = strconv.ParseFloat(s, 64)
	}

	var w, h float64
	parse(ans.Width, &w)
	parse(ans.Height, &h)
	parse(ans.FontSize, &cfg.General.FontSize)
	parse(ans.LineWidth, &cfg.General.LineWidth)
	if err != nil {
		return config.Config{}, fmt.Errorf("init: %w", err)
	}
	cfg.General.FigSize = []float64{w, h}

	if cfg.General.DPI, err = strconv.Atoi(ans.DPI); err != nil {
		return config.Config{}, fmt.Errorf("init: %w", err)
	}

	switch ans.Mode {
	case style.ModeNative:
		cfg.Latex.MathTextCM = ans.MathTextCM
	case style.ModeDefaultLatex:
		cfg.Latex.UseLatex = true
		cfg.Latex.UseDefaultLatex = true
		cfg.Latex.LatexSansText = ans.LatexSansText
	default:
		cfg.Latex.UseLatex = true
		cfg.Latex.TexSystem = ans.TexSystem
		cfg.Latex.Fonts = ans.Fonts
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}

	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive integer")
	}

	return nil
}

func validateFont(s string) error {
	return style.FontSet{Main: s}.Validate()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
