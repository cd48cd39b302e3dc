// Package config loads plotstyle settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/germanamz/plotstyle/pkg/style"
	"github.com/germanamz/plotstyle/pkg/texengine"
)

// Config is the top-level configuration file.
type Config struct {
	General GeneralConfig `yaml:"general"`
	Latex   LatexConfig   `yaml:"latex"`
	Output  OutputConfig  `yaml:"output"`
}

// GeneralConfig mirrors style.Params. A zero or omitted field means unset
// and takes the value from style.DefaultParams; YAML has no separate way to
// say "unset", so a literal 0 cannot be configured from a file. Any non-zero
// value, negative ones included, is passed through unchecked. Library callers
// that need a zero value set it on the Style with SetGeneralParams.
type GeneralConfig struct {
	FigSize   []float64         `yaml:"figsize,omitempty"`
	FontSize  float64           `yaml:"font_size,omitempty"`
	DPI       int               `yaml:"dpi,omitempty"`
	LineWidth float64           `yaml:"linewidth,omitempty"`
	Extra     map[string]string `yaml:"extra,omitempty"`
}

// LatexConfig mirrors style.Options.
type LatexConfig struct {
	UseLatex        bool       `yaml:"use_latex"`
	UseDefaultLatex bool       `yaml:"use_default_latex"`
	LatexSansText   bool       `yaml:"latex_sans_text,omitempty"`
	TexSystem       string     `yaml:"tex_system,omitempty"`
	MathTextCM      bool       `yaml:"mathtext_cm,omitempty"`
	Fonts           FontConfig `yaml:"fonts,omitempty"`
}

// FontConfig mirrors style.FontSet.
type FontConfig struct {
	Main    string `yaml:"main,omitempty"`
	Sans    string `yaml:"sans,omitempty"`
	Math    string `yaml:"math,omitempty"`
	MathRM  string `yaml:"mathrm,omitempty"`
	MathCal string `yaml:"mathcal,omitempty"`
	Special string `yaml:"special,omitempty"`
}

// OutputConfig holds rendering output settings.
type OutputConfig struct {
	// RCFile is where `plotstyle rc` writes the matplotlibrc. Relative paths
	// resolve against the working directory.
	RCFile string `yaml:"rc_file,omitempty"`
	// KeepBuild keeps the intermediate .tex/.log files of PGF compilation.
	KeepBuild bool `yaml:"keep_build,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	p := style.DefaultParams()

	return Config{
		General: GeneralConfig{
			FigSize:   []float64{p.FigSize[0], p.FigSize[1]},
			FontSize:  p.FontSize,
			DPI:       p.DPI,
			LineWidth: p.LineWidth,
		},
	}
}

// LoadConfig reads a YAML file and returns a Config.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML without environment expansion.
func Parse(data []byte) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return buf.Bytes(), nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if n := len(c.General.FigSize); n != 0 && n != 2 {
		return fmt.Errorf("config: general: figsize needs 2 values, got %d", n)
	}

	for k := range c.General.Extra {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("config: general: extra: empty key")
		}
	}

	if _, err := texengine.ParseEngine(c.Latex.TexSystem); err != nil {
		return fmt.Errorf("config: latex: %w", err)
	}

	if err := c.Latex.Fonts.fontSet().Validate(); err != nil {
		return fmt.Errorf("config: latex: %w", err)
	}

	return nil
}

// Params converts the general section into style.Params, filling unset
// fields from style.DefaultParams.
func (c Config) Params() style.Params {
	p := style.DefaultParams()

	if len(c.General.FigSize) == 2 {
		p.FigSize = [2]float64{c.General.FigSize[0], c.General.FigSize[1]}
	}
	if c.General.FontSize != 0 {
		p.FontSize = c.General.FontSize
	}
	if c.General.DPI != 0 {
		p.DPI = c.General.DPI
	}
	if c.General.LineWidth != 0 {
		p.LineWidth = c.General.LineWidth
	}
	p.Extra = c.General.Extra

	return p
}

// Options converts the latex section into style.Options. It assumes
// Validate passed; an invalid engine name falls back to the default.
func (c Config) Options() style.Options {
	engine, err := texengine.ParseEngine(c.Latex.TexSystem)
	if err != nil {
		engine = texengine.DefaultEngine
	}

	return style.Options{
		UseLatex:        c.Latex.UseLatex,
		UseDefaultLatex: c.Latex.UseDefaultLatex,
		LatexSansText:   c.Latex.LatexSansText,
		TexSystem:       engine,
		Fonts:           c.Latex.Fonts.fontSet(),
		MathTextCM:      c.Latex.MathTextCM,
	}
}

func (f FontConfig) fontSet() style.FontSet {
	return style.FontSet{
		Main:    f.Main,
		Sans:    f.Sans,
		Math:    f.Math,
		MathRM:  f.MathRM,
		MathCal: f.MathCal,
		Special: f.Special,
	}
}

// FontConfigFrom converts a style.FontSet.
func FontConfigFrom(f style.FontSet) FontConfig {
	return FontConfig{
		Main:    f.Main,
		Sans:    f.Sans,
		Math:    f.Math,
		MathRM:  f.MathRM,
		MathCal: f.MathCal,
		Special: f.Special,
	}
}
