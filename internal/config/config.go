package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/9Echo/Postcards/internal/layout"
)

//go:embed layout.yaml
var layoutYAML []byte

type Config struct {
	Paths  PathsConfig
	Fonts  FontsConfig
	Layout layout.Spec
}

type PathsConfig struct {
	InputDir  string // default input directory for convert
	OutputDir string // default output directory for convert
}

type FontsConfig struct {
	Path string // optional font file tried before the builtin candidates
}

// layoutFile mirrors the embedded layout.yaml structure.
type layoutFile struct {
	Canvas struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
		DPI    int `yaml:"dpi"`
	} `yaml:"canvas"`
	Strip struct {
		Ratio      float64 `yaml:"ratio"`
		TextMargin int     `yaml:"text_margin"`
		FontSize   float64 `yaml:"font_size"`
	} `yaml:"strip"`
	Rotation struct {
		GainThreshold float64 `yaml:"gain_threshold"`
	} `yaml:"rotation"`
	Colors struct {
		Background string `yaml:"background"`
		Text       string `yaml:"text"`
	} `yaml:"colors"`
	Output struct {
		JPEGQuality int `yaml:"jpeg_quality"`
	} `yaml:"output"`
}

func Load() *Config {
	var lf layoutFile
	if err := yaml.Unmarshal(layoutYAML, &lf); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded layout.yaml: " + err.Error())
	}

	background, err := parseHexColor(lf.Colors.Background)
	if err != nil {
		panic("invalid background color in embedded layout.yaml: " + err.Error())
	}
	text, err := parseHexColor(lf.Colors.Text)
	if err != nil {
		panic("invalid text color in embedded layout.yaml: " + err.Error())
	}

	spec := layout.Spec{
		CanvasWidth:  lf.Canvas.Width,
		CanvasHeight: lf.Canvas.Height,
		StripRatio:   lf.Strip.Ratio,
		RotateGain:   lf.Rotation.GainThreshold,
		Background:   background,
		TextColor:    text,
		TextMargin:   lf.Strip.TextMargin,
		FontSize:     lf.Strip.FontSize,
		JPEGQuality:  lf.Output.JPEGQuality,
		DPI:          lf.Canvas.DPI,
	}
	if err := spec.Validate(); err != nil {
		panic("invalid embedded layout.yaml: " + err.Error())
	}

	return &Config{
		Paths: PathsConfig{
			InputDir:  os.Getenv("POSTCARDS_INPUT_DIR"),
			OutputDir: os.Getenv("POSTCARDS_OUTPUT_DIR"),
		},
		Fonts: FontsConfig{
			Path: os.Getenv("POSTCARDS_FONT"),
		},
		Layout: spec,
	}
}

// parseHexColor parses "#RRGGBB" into an opaque color.
func parseHexColor(s string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}
