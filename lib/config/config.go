package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"github.com/tallyframe/tallyframe/lib/charts"
	"github.com/tallyframe/tallyframe/lib/document"
)

type Config struct {
	Canvas       CanvasCfg
	Playback     PlaybackCfg
	ColourPreset string            `yaml:"colour_preset"`
	Palette      map[string]string `yaml:"palette"`
	Features     map[string]bool   `yaml:"features"`
	Document     CfgPath           `yaml:"document"`
	Watch        bool              `yaml:"watch"`
	Dataset      *DatasetCfg       `yaml:"dataset"`
	Api          *ApiCfg           `yaml:"api"`
	LogLevel     string            `yaml:"log_level"`
}

type CanvasCfg struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type PlaybackCfg struct {
	Speed    float64 `yaml:"speed"`
	Autoplay bool    `yaml:"autoplay"`
	Loop     bool    `yaml:"loop"`
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			slog.Warn("could not close config", slog.String("module", "config"), slog.String("file", filename))
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	unmarshalBase = filepath.Dir(absFilename)
	defer func() {
		unmarshalBase = ""
	}()

	cfg := &Config{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = document.Defaults.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = document.Defaults.Height
	}
	if c.Canvas.FPS == 0 {
		c.Canvas.FPS = 30
	}
	if c.Playback.Speed == 0 {
		c.Playback.Speed = 1
	}
	if c.ColourPreset == "" {
		c.ColourPreset = document.Defaults.ColorPreset
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate fills in defaults for omitted keys and checks the rest.
func (c *Config) Validate() error {
	c.setDefaults()

	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas size %dx%d is invalid", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.FPS < 0 || c.Canvas.FPS > 240 {
		return fmt.Errorf("canvas.fps must be between 1 and 240, got %d", c.Canvas.FPS)
	}
	if c.Playback.Speed < 0 {
		return fmt.Errorf("playback.speed must be positive, got %v", c.Playback.Speed)
	}

	p, ok := charts.Preset(c.ColourPreset)
	if !ok {
		return fmt.Errorf("colour_preset %s does not exist (have %s)", c.ColourPreset, strings.Join(charts.PresetNames(), ", "))
	}
	if _, err := p.WithOverrides(c.Palette); err != nil {
		return fmt.Errorf("palette is invalid: %w", err)
	}

	if c.Document == "" && c.Dataset == nil {
		return fmt.Errorf("either document or dataset should be defined")
	}
	if c.Document != "" && c.Dataset != nil {
		return fmt.Errorf("document and dataset cannot both be defined")
	}
	if c.Watch && c.Document == "" {
		return fmt.Errorf("cannot enable watch without a document")
	}
	if c.Dataset != nil {
		if err := c.Dataset.Validate(); err != nil {
			return fmt.Errorf("dataset is invalid: %w", err)
		}
	}

	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api.bind must be specified when the api is enabled")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level %s is invalid: %w", c.LogLevel, err)
	}
	return level, nil
}

// ResolvePalette resolves the colour preset with the configured overrides.
func (c *Config) ResolvePalette() (charts.Palette, error) {
	p, _ := charts.Preset(c.ColourPreset)
	return p.WithOverrides(c.Palette)
}

// Presentation is the initial presentation for a theatre built from this
// config. A loaded document replaces it.
func (c *Config) Presentation() document.Presentation {
	p := document.DefaultPresentation()
	p.Width = c.Canvas.Width
	p.Height = c.Canvas.Height
	p.ColorPreset = c.ColourPreset
	for k, v := range c.Features {
		p.Features[k] = v
	}
	return p
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Canvas:\n")
	b.WriteString(fmt.Sprintf("  %dx%d @ %d fps\n", c.Canvas.Width, c.Canvas.Height, c.Canvas.FPS))

	b.WriteString("\nPlayback:\n")
	b.WriteString(fmt.Sprintf("  speed %v, autoplay %t, loop %t\n", c.Playback.Speed, c.Playback.Autoplay, c.Playback.Loop))

	b.WriteString("\nColours:\n")
	b.WriteString(fmt.Sprintf("  %s (%d overrides)\n", c.ColourPreset, len(c.Palette)))

	b.WriteString("\nScene:\n")
	if c.Document != "" {
		b.WriteString(fmt.Sprintf("  document %s (watch %t)\n", c.Document, c.Watch))
	} else {
		b.WriteString(fmt.Sprintf("  dataset %s (%s)\n", c.Dataset.Title, c.Dataset.Type))
	}

	if c.Api != nil {
		b.WriteString("\nApi:\n")
		b.WriteString(fmt.Sprintf("  %s\n", c.Api.Bind))
	}
	return b.String()
}
