// Package render defines the shared value types of the rendering subsystem:
// the render state with validated setters, repeat topologies, view modes,
// and the persistable settings snapshot.
package render

import (
	"fmt"
	"image/color"
	"math"
)

// Domain limits for the continuous render parameters. Every setter re-clamps
// to these ranges on each call, so replayed or programmatic out-of-range
// input is corrected rather than rejected.
const (
	MinScale = 0.05
	MaxScale = 5.0

	MinZoom = 0.01
	MaxZoom = 8.0

	MinMockupZoom = 1.0
	MaxMockupZoom = 1.5

	// DPI converts physical measurement-grid spacing to pixel spacing.
	DPI = 150

	// DefaultMaxCanvasSize is the default pixel budget for the interactive
	// preview surface.
	DefaultMaxCanvasSize = 1000
)

// GridOverlaySizes lists the allowed measurement-grid spacings in inches.
// Zero disables the grid.
var GridOverlaySizes = []int{0, 1, 2, 6, 12}

// RepeatType is the rule governing how alternate rows/columns of tiles are offset.
type RepeatType string

const (
	RepeatFull     RepeatType = "full"
	RepeatHalfDrop RepeatType = "half-drop"
	RepeatBrick    RepeatType = "brick"
)

// ParseRepeatType parses a repeat type name.
func ParseRepeatType(s string) (RepeatType, error) {
	switch RepeatType(s) {
	case RepeatFull, RepeatHalfDrop, RepeatBrick:
		return RepeatType(s), nil
	default:
		return RepeatFull, fmt.Errorf("unknown repeat type %q", s)
	}
}

// ViewMode selects what the preview surface shows.
type ViewMode int

const (
	// ViewTile shows the plain tiled pattern.
	ViewTile ViewMode = iota
	// ViewTileGrid shows the tiled pattern with tile-boundary grid lines.
	ViewTileGrid
	// ViewFabric shows the pattern keyed onto the fabric mockup.
	ViewFabric
	// ViewMockup shows the pattern keyed onto the selected product mockup.
	ViewMockup
)

// String returns the view mode name.
func (v ViewMode) String() string {
	switch v {
	case ViewTileGrid:
		return "tile-grid"
	case ViewFabric:
		return "fabric"
	case ViewMockup:
		return "mockup"
	default:
		return "tile"
	}
}

// ParseViewMode parses a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "tile":
		return ViewTile, nil
	case "tile-grid":
		return ViewTileGrid, nil
	case "fabric":
		return ViewFabric, nil
	case "mockup":
		return ViewMockup, nil
	default:
		return ViewTile, fmt.Errorf("unknown view mode %q", s)
	}
}

// MockupKind identifies a product mockup texture. Mockup handling switches
// exhaustively over this type so a missing handler fails at compile time.
type MockupKind int

const (
	MockupFabric MockupKind = iota
	MockupTShirt
	MockupMug
	MockupToteBag
	MockupPillow
)

// Kinds returns all registered mockup kinds.
func Kinds() []MockupKind {
	return []MockupKind{MockupFabric, MockupTShirt, MockupMug, MockupToteBag, MockupPillow}
}

// String returns the mockup kind name.
func (k MockupKind) String() string {
	switch k {
	case MockupFabric:
		return "fabric"
	case MockupTShirt:
		return "t-shirt"
	case MockupMug:
		return "mug"
	case MockupToteBag:
		return "tote-bag"
	case MockupPillow:
		return "pillow"
	default:
		return "unknown"
	}
}

// ParseMockupKind parses a mockup kind name.
func ParseMockupKind(s string) (MockupKind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return MockupFabric, fmt.Errorf("unknown mockup kind %q", s)
}

// State holds every parameter of the tile-transform and compositing engine.
// It is owned by the rendering subsystem and mutated only through setters
// that re-clamp to the documented domains. The engine is single-threaded, so
// State carries no locking.
type State struct {
	scale          float64
	zoom           float64
	offsetPercentX float64
	offsetPercentY float64
	panX, panY     float64

	repeatType RepeatType
	viewMode   ViewMode
	mockup     MockupKind

	backgroundColor color.Color
	gridOverlaySize int
	seamlessTest    bool

	mockupZoom   float64
	mockupRotate float64

	maxCanvasSize int

	pattern *PatternImage
}

// NewState returns a State with default values.
func NewState() *State {
	return &State{
		scale:           1.0,
		zoom:            1.0,
		repeatType:      RepeatFull,
		viewMode:        ViewTile,
		mockup:          MockupFabric,
		backgroundColor: color.White,
		mockupZoom:      MinMockupZoom,
		maxCanvasSize:   DefaultMaxCanvasSize,
	}
}

// Scale returns the pattern scale factor.
func (s *State) Scale() float64 { return s.scale }

// SetScale sets the pattern scale, clamped to [MinScale, MaxScale].
func (s *State) SetScale(v float64) {
	s.scale = clamp(v, MinScale, MaxScale)
}

// Zoom returns the viewport zoom factor.
func (s *State) Zoom() float64 { return s.zoom }

// SetZoom sets the viewport zoom, clamped to [MinZoom, MaxZoom].
func (s *State) SetZoom(v float64) {
	s.zoom = clamp(v, MinZoom, MaxZoom)
}

// OffsetPercentX returns the horizontal tile offset as a fraction in [0, 1).
func (s *State) OffsetPercentX() float64 { return s.offsetPercentX }

// SetOffsetPercentX sets the horizontal tile offset. Values outside [0, 1)
// wrap around, since an offset of 1.2 tiles is visually identical to 0.2.
func (s *State) SetOffsetPercentX(v float64) {
	s.offsetPercentX = wrapFraction(v)
}

// OffsetPercentY returns the vertical tile offset as a fraction in [0, 1).
func (s *State) OffsetPercentY() float64 { return s.offsetPercentY }

// SetOffsetPercentY sets the vertical tile offset, wrapping into [0, 1).
func (s *State) SetOffsetPercentY(v float64) {
	s.offsetPercentY = wrapFraction(v)
}

// Pan returns the pan translation in device pixels.
func (s *State) Pan() (x, y float64) { return s.panX, s.panY }

// SetPan sets the pan translation. Non-finite values reset to zero.
func (s *State) SetPan(x, y float64) {
	s.panX = finiteOrZero(x)
	s.panY = finiteOrZero(y)
}

// RepeatType returns the active repeat topology.
func (s *State) RepeatType() RepeatType { return s.repeatType }

// SetRepeatType sets the repeat topology. Unknown values fall back to full.
func (s *State) SetRepeatType(t RepeatType) {
	switch t {
	case RepeatFull, RepeatHalfDrop, RepeatBrick:
		s.repeatType = t
	default:
		s.repeatType = RepeatFull
	}
}

// ViewMode returns the active view mode.
func (s *State) ViewMode() ViewMode { return s.viewMode }

// SetViewMode sets the active view mode.
func (s *State) SetViewMode(v ViewMode) {
	switch v {
	case ViewTile, ViewTileGrid, ViewFabric, ViewMockup:
		s.viewMode = v
	default:
		s.viewMode = ViewTile
	}
}

// Mockup returns the selected mockup kind for ViewMockup.
func (s *State) Mockup() MockupKind { return s.mockup }

// SetMockup sets the selected mockup kind. Unknown values fall back to fabric.
func (s *State) SetMockup(k MockupKind) {
	switch k {
	case MockupFabric, MockupTShirt, MockupMug, MockupToteBag, MockupPillow:
		s.mockup = k
	default:
		s.mockup = MockupFabric
	}
}

// BackgroundColor returns the preview background color.
func (s *State) BackgroundColor() color.Color { return s.backgroundColor }

// SetBackgroundColor sets the preview background color. Nil resets to white.
func (s *State) SetBackgroundColor(c color.Color) {
	if c == nil {
		c = color.White
	}
	s.backgroundColor = c
}

// GridOverlaySize returns the measurement-grid spacing in inches (0 = off).
func (s *State) GridOverlaySize() int { return s.gridOverlaySize }

// SetGridOverlaySize sets the measurement-grid spacing, snapping to the
// nearest allowed value in GridOverlaySizes.
func (s *State) SetGridOverlaySize(inches int) {
	best := GridOverlaySizes[0]
	bestDist := math.Abs(float64(inches - best))
	for _, allowed := range GridOverlaySizes[1:] {
		if d := math.Abs(float64(inches - allowed)); d < bestDist {
			best, bestDist = allowed, d
		}
	}
	s.gridOverlaySize = best
}

// SeamlessTest reports whether the seamless-edge test overlay is enabled.
func (s *State) SeamlessTest() bool { return s.seamlessTest }

// SetSeamlessTest toggles the seamless-edge test overlay.
func (s *State) SetSeamlessTest(on bool) {
	s.seamlessTest = on
}

// MockupZoom returns the mockup pattern zoom.
func (s *State) MockupZoom() float64 { return s.mockupZoom }

// SetMockupZoom sets the mockup pattern zoom, clamped to [1.0, 1.5].
func (s *State) SetMockupZoom(v float64) {
	s.mockupZoom = clamp(v, MinMockupZoom, MaxMockupZoom)
}

// MockupRotate returns the mockup rotation in degrees, in [0, 360).
func (s *State) MockupRotate() float64 { return s.mockupRotate }

// SetMockupRotate sets the mockup rotation, wrapping into [0, 360).
func (s *State) SetMockupRotate(deg float64) {
	if !isFinite(deg) {
		deg = 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	s.mockupRotate = deg
}

// MaxCanvasSize returns the preview/export pixel budget.
func (s *State) MaxCanvasSize() int { return s.maxCanvasSize }

// SetMaxCanvasSize sets the preview/export pixel budget. Non-positive input
// resets to the default.
func (s *State) SetMaxCanvasSize(px int) {
	if px <= 0 {
		px = DefaultMaxCanvasSize
	}
	s.maxCanvasSize = px
}

// Pattern returns the loaded pattern image, or nil when idle.
func (s *State) Pattern() *PatternImage { return s.pattern }

// SetPattern sets or clears the loaded pattern image.
func (s *State) SetPattern(p *PatternImage) {
	s.pattern = p
}

// TileSize returns the logical tile size in pixels: pattern width times
// scale. It is always positive when a pattern is loaded, because scale is
// clamped at MinScale and pattern dimensions are validated at load time.
func (s *State) TileSize() float64 {
	if s.pattern == nil {
		return 0
	}
	return float64(s.pattern.Width()) * s.scale
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

// wrapFraction maps v into [0, 1).
func wrapFraction(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	return v
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
