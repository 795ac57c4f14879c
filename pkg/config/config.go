// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/patternshow/pkg/preview"
	"github.com/user/patternshow/pkg/render"
)

// Config represents the full configuration for patternshow.
type Config struct {
	// Pattern placement
	Scale          float64 `yaml:"scale"`
	Zoom           float64 `yaml:"zoom"`
	PanX           float64 `yaml:"pan_x"`
	PanY           float64 `yaml:"pan_y"`
	OffsetPercentX float64 `yaml:"offset_percent_x"`
	OffsetPercentY float64 `yaml:"offset_percent_y"`
	RepeatType     string  `yaml:"repeat_type"`

	// View
	ViewMode        string  `yaml:"view_mode"`
	Mockup          string  `yaml:"mockup"`
	MockupDir       string  `yaml:"mockup_dir"`
	BackgroundColor string  `yaml:"background_color"`
	GridOverlaySize int     `yaml:"grid_overlay_size"`
	SeamlessTest    bool    `yaml:"seamless_test"`
	MockupZoom      float64 `yaml:"mockup_zoom"`
	MockupRotate    float64 `yaml:"mockup_rotate"`

	// Surfaces
	MaxCanvasSize int `yaml:"max_canvas_size"`

	// Export
	Export ExportConfig `yaml:"export"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ExportConfig represents export settings.
type ExportConfig struct {
	Size    int    `yaml:"size"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Scale:      1.0,
		Zoom:       1.0,
		RepeatType: string(render.RepeatFull),

		ViewMode:        "tile",
		Mockup:          "fabric",
		BackgroundColor: "#ffffff",
		MockupZoom:      render.MinMockupZoom,

		MaxCanvasSize: render.DefaultMaxCanvasSize,

		Export: ExportConfig{
			Size:    render.DefaultMaxCanvasSize,
			Format:  "png",
			Quality: 90,
		},

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Apply pushes the configuration into an engine. Values pass through the
// validated setters, so an out-of-range config file is corrected, not
// rejected.
func (c Config) Apply(e *preview.Engine) error {
	repeat, err := render.ParseRepeatType(c.RepeatType)
	if err != nil {
		return err
	}
	view, err := render.ParseViewMode(c.ViewMode)
	if err != nil {
		return err
	}
	mockup, err := render.ParseMockupKind(c.Mockup)
	if err != nil {
		return err
	}

	e.SetMaxCanvasSize(c.MaxCanvasSize)
	e.SetScale(c.Scale)
	e.SetZoom(c.Zoom)
	e.SetPan(c.PanX, c.PanY)
	e.SetOffsetPercentX(c.OffsetPercentX)
	e.SetOffsetPercentY(c.OffsetPercentY)
	e.SetRepeatType(repeat)
	e.SetViewMode(view)
	e.SetMockup(mockup)
	e.SetBackgroundColor(c.BackgroundColor)
	e.SetGridOverlaySize(c.GridOverlaySize)
	e.SetSeamlessTest(c.SeamlessTest)
	e.SetMockupZoom(c.MockupZoom)
	e.SetMockupRotate(c.MockupRotate)
	return nil
}
