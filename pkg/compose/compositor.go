// Package compose draws tiled patterns into a drawing target. The same
// placement math serves the interactive preview and exports at arbitrary
// resolution; only the framing and resampling quality differ.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/user/patternshow/pkg/ports"
	"github.com/user/patternshow/pkg/render"
	"github.com/user/patternshow/pkg/tiling"
)

// ExportRequest describes a single export. It is consumed once.
type ExportRequest struct {
	Size    int
	Format  ports.ImageFormat
	Quality int // JPEG quality (0-100); ignored for PNG
}

// Validate checks the request parameters.
func (r ExportRequest) Validate() error {
	if r.Size <= 0 {
		return fmt.Errorf("export size must be positive, got %d", r.Size)
	}
	return nil
}

// Compositor renders tiled patterns and overlays into a ports.Canvas.
type Compositor struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
	overlay  *OverlayRenderer
}

// NewCompositor creates a new Compositor.
func NewCompositor(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Compositor {
	return &Compositor{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("compose"),
		overlay:  NewOverlayRenderer(),
	}
}

// Render draws the current state into the canvas: background, tiles, and the
// overlays the state enables. With no pattern loaded it draws a placeholder
// and returns nil, since the empty state is not an error.
func (c *Compositor) Render(canvas ports.Canvas, state *render.State) error {
	w, h := canvas.Size()
	canvas.FillRect(0, 0, float64(w), float64(h), state.BackgroundColor())

	if state.Pattern() == nil {
		c.drawPlaceholder(canvas)
		return nil
	}

	panX, panY := state.Pan()
	layout, err := c.RenderTiles(canvas, state, panX, panY, state.Zoom(), false)
	if err != nil {
		return err
	}

	if state.ViewMode() == render.ViewTileGrid {
		c.overlay.DrawTileGrid(canvas, state, layout)
	}
	if state.SeamlessTest() {
		c.overlay.DrawSeamlessTest(canvas, state, layout)
	}
	if state.GridOverlaySize() > 0 {
		c.overlay.DrawMeasureGrid(canvas, state)
	}

	if c.sink.Enabled() {
		if data, err := json.MarshalIndent(layout, "", "  "); err == nil {
			c.sink.SaveTileLayoutJSON(data)
		}
		c.sink.SaveComposite(state.ViewMode().String(), canvas.ToImage())
	}

	return nil
}

// RenderTiles computes the covering tile layout for the canvas and blits
// every tile under a single translate(pan)+scale(zoom) transform applied
// before the loop, so consecutive full-repeat tiles abut exactly.
//
// highQuality pre-resamples the pattern to its device footprint with the
// renderer's high-quality path; all tiles share one resampled raster because
// every placement has the same size.
func (c *Compositor) RenderTiles(canvas ports.Canvas, state *render.State, panX, panY, zoom float64, highQuality bool) (tiling.Layout, error) {
	pattern := state.Pattern()
	if pattern == nil {
		return tiling.Layout{}, fmt.Errorf("no pattern loaded")
	}

	w, h := canvas.Size()
	layout := tiling.Compute(tiling.Input{
		ViewportWidth:  float64(w),
		ViewportHeight: float64(h),
		TileSize:       state.TileSize(),
		PanX:           panX,
		PanY:           panY,
		Zoom:           zoom,
		OffsetPercentX: state.OffsetPercentX(),
		OffsetPercentY: state.OffsetPercentY(),
		Repeat:         state.RepeatType(),
	})

	tile := pattern.Image()
	if highQuality {
		device := int(math.Round(state.TileSize() * zoom))
		if device < 1 {
			device = 1
		}
		tile = c.renderer.ResizeImage(tile, device, device)
	}

	c.logger.Debug("Placing %d tiles (%dx%d) at tile size %.2f", len(layout.Placements), layout.CountX, layout.CountY, layout.TileSize)

	canvas.Push()
	canvas.Translate(panX, panY)
	canvas.Scale(zoom, zoom)
	for _, p := range layout.Placements {
		canvas.DrawImageRect(tile, p.X, p.Y, p.Size, p.Size)
	}
	canvas.Pop()

	return layout, nil
}

// Export renders the pattern into an offscreen buffer of req.Size and
// returns the encoded bytes. Pan and zoom are rescaled by
// size/maxCanvasSize so the export is a scaled, not reframed, copy of the
// preview. Export always uses high-quality resampling. With no pattern
// loaded it is a no-op and returns nil bytes.
//
// The context is the abort token: it is checked between the layout and
// encode phases, not inside the blit loop.
func (c *Compositor) Export(ctx context.Context, state *render.State, req ExportRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if state.Pattern() == nil {
		c.logger.Warn("Export requested with no pattern loaded")
		return nil, nil
	}

	panX, panY := state.Pan()
	exPanX, exPanY, exZoom := tiling.ExportFraming(panX, panY, state.Zoom(), req.Size, state.MaxCanvasSize())

	canvas := c.renderer.CreateCanvas(req.Size, req.Size, state.BackgroundColor())
	if _, err := c.RenderTiles(canvas, state, exPanX, exPanY, exZoom, true); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export aborted: %w", err)
	}

	data, err := c.renderer.EncodeImage(canvas.ToImage(), req.Format, req.Quality)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	if c.sink.Enabled() {
		c.sink.SaveExport(data, req.Format)
	}

	c.logger.Debug("Exported %dx%d %s (%d bytes)", req.Size, req.Size, req.Format, len(data))
	return data, nil
}

// drawPlaceholder fills the canvas with a neutral idle hint.
func (c *Compositor) drawPlaceholder(canvas ports.Canvas) {
	w, h := canvas.Size()
	fw, fh := float64(w), float64(h)
	border := color.RGBA{R: 180, G: 180, B: 180, A: 255}

	canvas.SetDash(8, 6)
	canvas.StrokeRect(fw*0.1, fh*0.1, fw*0.8, fh*0.8, border, 2)
	canvas.SetDash()
	canvas.DrawText("No pattern loaded", fw/2, fh/2, border)
}
