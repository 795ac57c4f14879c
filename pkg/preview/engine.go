// Package preview provides the interactive engine that owns the render
// state. Every parameter mutation goes through a validating setter and
// synchronously triggers exactly one redraw; there is no frame queue.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/user/patternshow/pkg/chromakey"
	"github.com/user/patternshow/pkg/compose"
	"github.com/user/patternshow/pkg/params"
	"github.com/user/patternshow/pkg/ports"
	"github.com/user/patternshow/pkg/render"
)

// ErrExportInProgress is returned when an export is requested while another
// export is still running. Exports are serialized, never interleaved.
var ErrExportInProgress = errors.New("export already in progress")

// wheelStep is the multiplicative zoom change per wheel notch.
const wheelStep = 1.1

// Engine owns the render state and coordinates the compositors. It is
// single-threaded by design: callers drive it from one event loop, and only
// the export guard uses locking.
type Engine struct {
	state    *render.State
	renderer ports.Renderer
	tiles    *compose.Compositor
	chroma   *chromakey.Compositor
	logger   ports.Logger

	mockups  map[render.MockupKind]image.Image
	onRedraw func()

	exportMu  sync.Mutex
	exporting bool
}

// NewEngine creates an engine with a fresh default state.
func NewEngine(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Engine {
	tiles := compose.NewCompositor(renderer, sink, logger)
	return &Engine{
		state:    render.NewState(),
		renderer: renderer,
		tiles:    tiles,
		chroma:   chromakey.NewCompositor(renderer, tiles, sink, logger),
		logger:   logger.WithComponent("preview"),
		mockups:  make(map[render.MockupKind]image.Image),
	}
}

// State exposes the render state for reading. Mutations must go through the
// engine setters so each one triggers its redraw.
func (e *Engine) State() *render.State { return e.state }

// OnRedraw registers the callback invoked synchronously after every
// mutation. The UI collaborator typically re-renders its surface in it.
func (e *Engine) OnRedraw(fn func()) { e.onRedraw = fn }

func (e *Engine) redraw() {
	if e.onRedraw != nil {
		e.onRedraw()
	}
}

// RegisterMockup associates a decoded mockup texture with a kind.
func (e *Engine) RegisterMockup(kind render.MockupKind, img image.Image) {
	e.mockups[kind] = img
}

// PatternLoaded is the "pattern loaded" callback from the image-acquisition
// collaborator. A nil image clears the pattern and returns to the idle state.
func (e *Engine) PatternLoaded(img image.Image) error {
	if img == nil {
		e.state.SetPattern(nil)
		e.redraw()
		return nil
	}
	p, err := render.NewPatternImage(img)
	if err != nil {
		return fmt.Errorf("load pattern: %w", err)
	}
	e.state.SetPattern(p)
	e.logger.Info("Pattern loaded: %dx%d", p.Width(), p.Height())
	e.redraw()
	return nil
}

// SetScale sets the pattern scale and redraws.
func (e *Engine) SetScale(v float64) {
	e.state.SetScale(v)
	e.redraw()
}

// SetZoom sets the viewport zoom and redraws.
func (e *Engine) SetZoom(v float64) {
	e.state.SetZoom(v)
	e.redraw()
}

// SetOffsetPercentX sets the horizontal tile offset fraction and redraws.
func (e *Engine) SetOffsetPercentX(v float64) {
	e.state.SetOffsetPercentX(v)
	e.redraw()
}

// SetOffsetPercentY sets the vertical tile offset fraction and redraws.
func (e *Engine) SetOffsetPercentY(v float64) {
	e.state.SetOffsetPercentY(v)
	e.redraw()
}

// SetPan sets the pan translation and redraws.
func (e *Engine) SetPan(x, y float64) {
	e.state.SetPan(x, y)
	e.redraw()
}

// SetRepeatType sets the repeat topology and redraws.
func (e *Engine) SetRepeatType(t render.RepeatType) {
	e.state.SetRepeatType(t)
	e.redraw()
}

// SetViewMode sets the view mode and redraws.
func (e *Engine) SetViewMode(v render.ViewMode) {
	e.state.SetViewMode(v)
	e.redraw()
}

// SetMockup sets the selected mockup kind and redraws.
func (e *Engine) SetMockup(k render.MockupKind) {
	e.state.SetMockup(k)
	e.redraw()
}

// SetBackgroundColor sets the background color and redraws.
func (e *Engine) SetBackgroundColor(hex string) {
	e.state.SetBackgroundColor(render.ParseHexColor(hex))
	e.redraw()
}

// SetGridOverlaySize sets the measurement-grid spacing and redraws.
func (e *Engine) SetGridOverlaySize(inches int) {
	e.state.SetGridOverlaySize(inches)
	e.redraw()
}

// SetSeamlessTest toggles the seamless-edge test overlay and redraws.
func (e *Engine) SetSeamlessTest(on bool) {
	e.state.SetSeamlessTest(on)
	e.redraw()
}

// SetMockupZoom sets the mockup pattern zoom and redraws.
func (e *Engine) SetMockupZoom(v float64) {
	e.state.SetMockupZoom(v)
	e.redraw()
}

// SetMockupRotate sets the mockup rotation and redraws.
func (e *Engine) SetMockupRotate(deg float64) {
	e.state.SetMockupRotate(deg)
	e.redraw()
}

// SetMaxCanvasSize sets the preview pixel budget and redraws.
func (e *Engine) SetMaxCanvasSize(px int) {
	e.state.SetMaxCanvasSize(px)
	e.redraw()
}

// SetScaleSlider applies a scale-slider position during a continuous drag.
// No snapping happens here; snapping is a release-time behavior.
func (e *Engine) SetScaleSlider(pos float64) {
	e.SetScale(params.ScaleFromSlider(pos))
}

// ReleaseScaleSlider snaps the scale on gesture release and returns the
// slider position re-projected through the inverse map for UI consistency.
func (e *Engine) ReleaseScaleSlider() float64 {
	snapped := params.SnapScale(e.state.Scale())
	e.SetScale(snapped)
	return params.SliderFromScale(e.state.Scale())
}

// SetZoomSlider applies a zoom-slider position during a continuous drag.
func (e *Engine) SetZoomSlider(pos float64) {
	e.SetZoom(params.ZoomFromSlider(pos))
}

// ReleaseZoomSlider snaps the zoom on gesture release (in the percentage
// domain) and returns the re-projected slider position.
func (e *Engine) ReleaseZoomSlider() float64 {
	snapped := params.SnapZoomPercent(e.state.Zoom()*100) / 100
	e.SetZoom(snapped)
	return params.SliderFromZoom(e.state.Zoom())
}

// ReleaseOffsetX snaps the horizontal offset to 10% steps on gesture
// release and returns the snapped percentage.
func (e *Engine) ReleaseOffsetX() float64 {
	snapped := params.SnapOffsetPercent(e.state.OffsetPercentX() * 100)
	e.SetOffsetPercentX(snapped / 100)
	return snapped
}

// ReleaseOffsetY snaps the vertical offset to 10% steps on gesture release
// and returns the snapped percentage.
func (e *Engine) ReleaseOffsetY() float64 {
	snapped := params.SnapOffsetPercent(e.state.OffsetPercentY() * 100)
	e.SetOffsetPercentY(snapped / 100)
	return snapped
}

// DragBy pans the viewport by a pointer-drag delta. Pan is continuous and
// never snapped.
func (e *Engine) DragBy(dx, dy float64) {
	x, y := e.state.Pan()
	e.SetPan(x+dx, y+dy)
}

// Wheel applies one wheel gesture step: negative deltas zoom in, positive
// zoom out. The zoom stays clamped by the state setter.
func (e *Engine) Wheel(deltaY float64) {
	zoom := e.state.Zoom()
	if deltaY < 0 {
		zoom *= wheelStep
	} else if deltaY > 0 {
		zoom /= wheelStep
	}
	e.SetZoom(zoom)
}

// WheelEnd snaps the zoom when a wheel gesture settles.
func (e *Engine) WheelEnd() {
	e.SetZoom(params.SnapZoomPercent(e.state.Zoom()*100) / 100)
}

// Render draws the current state into the canvas according to the view
// mode. With no pattern loaded every mode renders the placeholder.
func (e *Engine) Render(canvas ports.Canvas) error {
	state := e.state

	switch state.ViewMode() {
	case render.ViewTile, render.ViewTileGrid:
		return e.tiles.Render(canvas, state)
	case render.ViewFabric:
		return e.renderMockup(canvas, render.MockupFabric)
	case render.ViewMockup:
		return e.renderMockup(canvas, state.Mockup())
	default:
		return e.tiles.Render(canvas, state)
	}
}

func (e *Engine) renderMockup(canvas ports.Canvas, kind render.MockupKind) error {
	state := e.state

	w, h := canvas.Size()
	canvas.FillRect(0, 0, float64(w), float64(h), state.BackgroundColor())
	if state.Pattern() == nil {
		return e.tiles.Render(canvas, state)
	}

	mockup, ok := e.mockups[kind]
	if !ok {
		return fmt.Errorf("mockup texture for %q is not registered", kind)
	}
	return e.chroma.Composite(canvas, state, mockup)
}

// Export renders the pattern at the requested size and returns the encoded
// bytes. Concurrent exports are rejected with ErrExportInProgress; the
// context is the abort token for the in-flight export. With no pattern
// loaded Export is a no-op returning nil bytes.
func (e *Engine) Export(ctx context.Context, req compose.ExportRequest) ([]byte, error) {
	e.exportMu.Lock()
	if e.exporting {
		e.exportMu.Unlock()
		return nil, ErrExportInProgress
	}
	e.exporting = true
	e.exportMu.Unlock()

	defer func() {
		e.exportMu.Lock()
		e.exporting = false
		e.exportMu.Unlock()
	}()

	return e.tiles.Export(ctx, e.state, req)
}

// Snapshot captures the persistable pattern settings.
func (e *Engine) Snapshot() render.Settings {
	return e.state.Snapshot()
}

// ApplySettings replays a settings snapshot through the validated setters
// and triggers one redraw.
func (e *Engine) ApplySettings(set render.Settings) {
	e.state.ApplySettings(set)
	e.redraw()
}
