package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/patternshow/pkg/adapters/logger"
	"github.com/user/patternshow/pkg/mocks"
	"github.com/user/patternshow/pkg/preview"
	"github.com/user/patternshow/pkg/render"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Scale != 1.0 || cfg.Zoom != 1.0 {
		t.Errorf("expected unit scale and zoom, got %v / %v", cfg.Scale, cfg.Zoom)
	}
	if cfg.RepeatType != "full" {
		t.Errorf("expected full repeat, got %q", cfg.RepeatType)
	}
	if cfg.ViewMode != "tile" || cfg.Mockup != "fabric" {
		t.Errorf("unexpected view defaults: %q / %q", cfg.ViewMode, cfg.Mockup)
	}
	if cfg.MaxCanvasSize != render.DefaultMaxCanvasSize {
		t.Errorf("expected max canvas size %d, got %d", render.DefaultMaxCanvasSize, cfg.MaxCanvasSize)
	}
	if cfg.Export.Format != "png" || cfg.Export.Quality != 90 {
		t.Errorf("unexpected export defaults: %+v", cfg.Export)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
scale: 0.5
zoom: 2.0
repeat_type: half-drop
view_mode: mockup
mockup: mug
background_color: "#222222"
grid_overlay_size: 6
seamless_test: true
export:
  size: 4000
  format: jpg
  quality: 80
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Scale != 0.5 || cfg.Zoom != 2.0 {
		t.Errorf("placement not loaded: %v / %v", cfg.Scale, cfg.Zoom)
	}
	if cfg.RepeatType != "half-drop" || cfg.ViewMode != "mockup" || cfg.Mockup != "mug" {
		t.Errorf("view fields not loaded: %q / %q / %q", cfg.RepeatType, cfg.ViewMode, cfg.Mockup)
	}
	if cfg.GridOverlaySize != 6 || !cfg.SeamlessTest {
		t.Errorf("overlay fields not loaded: %d / %v", cfg.GridOverlaySize, cfg.SeamlessTest)
	}
	if cfg.Export.Size != 4000 || cfg.Export.Format != "jpg" || cfg.Export.Quality != 80 {
		t.Errorf("export not loaded: %+v", cfg.Export)
	}

	// Unset keys keep their defaults.
	if cfg.MaxCanvasSize != render.DefaultMaxCanvasSize {
		t.Errorf("expected default max canvas size, got %d", cfg.MaxCanvasSize)
	}
	if cfg.BackgroundColor != "#222222" {
		t.Errorf("expected #222222, got %q", cfg.BackgroundColor)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	// The defaults still come back so callers can decide to continue.
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Errorf("expected defaults on missing file (-want +got):\n%s", diff)
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("scale: [not a number"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApply(t *testing.T) {
	cfg := Defaults()
	cfg.Scale = 0.75
	cfg.Zoom = 3.0
	cfg.PanX, cfg.PanY = -40, 25
	cfg.OffsetPercentX = 0.3
	cfg.RepeatType = "brick"
	cfg.ViewMode = "tile-grid"
	cfg.Mockup = "t-shirt"
	cfg.BackgroundColor = "#abcdef"
	cfg.GridOverlaySize = 12
	cfg.MockupZoom = 1.3
	cfg.MockupRotate = 15

	e := preview.NewEngine(&mocks.Renderer{}, mocks.NewDebugSink(false), logger.NewNoop())
	if err := cfg.Apply(e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := e.State()
	if s.Scale() != 0.75 || s.Zoom() != 3.0 {
		t.Errorf("placement not applied: %v / %v", s.Scale(), s.Zoom())
	}
	if x, y := s.Pan(); x != -40 || y != 25 {
		t.Errorf("pan not applied: (%v, %v)", x, y)
	}
	if s.RepeatType() != render.RepeatBrick {
		t.Errorf("repeat not applied: %v", s.RepeatType())
	}
	if s.ViewMode() != render.ViewTileGrid {
		t.Errorf("view mode not applied: %v", s.ViewMode())
	}
	if s.Mockup() != render.MockupTShirt {
		t.Errorf("mockup not applied: %v", s.Mockup())
	}
	if render.FormatHexColor(s.BackgroundColor()) != "#abcdef" {
		t.Errorf("background not applied: %v", render.FormatHexColor(s.BackgroundColor()))
	}
	if s.GridOverlaySize() != 12 {
		t.Errorf("grid size not applied: %d", s.GridOverlaySize())
	}
	if s.MockupZoom() != 1.3 || s.MockupRotate() != 15 {
		t.Errorf("mockup transform not applied: %v / %v", s.MockupZoom(), s.MockupRotate())
	}
}

// TestApply_CorrectsOutOfRange verifies out-of-range numeric config values
// pass through the clamping setters rather than failing.
func TestApply_CorrectsOutOfRange(t *testing.T) {
	cfg := Defaults()
	cfg.Scale = 50
	cfg.Zoom = 0
	cfg.OffsetPercentX = 1.75
	cfg.MockupRotate = -45

	e := preview.NewEngine(&mocks.Renderer{}, mocks.NewDebugSink(false), logger.NewNoop())
	if err := cfg.Apply(e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := e.State()
	if s.Scale() != render.MaxScale {
		t.Errorf("expected scale clamped to %v, got %v", render.MaxScale, s.Scale())
	}
	if s.Zoom() != render.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", render.MinZoom, s.Zoom())
	}
	if got := s.OffsetPercentX(); got != 0.75 {
		t.Errorf("expected offset wrapped to 0.75, got %v", got)
	}
	if s.MockupRotate() != 315 {
		t.Errorf("expected rotation wrapped to 315, got %v", s.MockupRotate())
	}
}

// TestApply_RejectsUnknownEnums verifies enum typos fail loudly instead of
// silently falling back.
func TestApply_RejectsUnknownEnums(t *testing.T) {
	e := preview.NewEngine(&mocks.Renderer{}, mocks.NewDebugSink(false), logger.NewNoop())

	cfg := Defaults()
	cfg.RepeatType = "diagonal"
	if err := cfg.Apply(e); err == nil {
		t.Error("expected error for unknown repeat type")
	}

	cfg = Defaults()
	cfg.ViewMode = "3d"
	if err := cfg.Apply(e); err == nil {
		t.Error("expected error for unknown view mode")
	}

	cfg = Defaults()
	cfg.Mockup = "hoodie"
	if err := cfg.Apply(e); err == nil {
		t.Error("expected error for unknown mockup")
	}
}
