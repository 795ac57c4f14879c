package compose

import (
	"image/color"
	"math"

	"github.com/user/patternshow/pkg/ports"
	"github.com/user/patternshow/pkg/render"
	"github.com/user/patternshow/pkg/tiling"
)

// Overlay stroke colors. The seamless-test color is deliberately loud so
// tile borders stand out against any pattern.
var (
	tileGridColor     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	seamlessTestColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	measureGridColor  = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// OverlayRenderer draws auxiliary overlays on top of the tiled composite.
type OverlayRenderer struct{}

// NewOverlayRenderer creates a new OverlayRenderer.
func NewOverlayRenderer() *OverlayRenderer {
	return &OverlayRenderer{}
}

// DrawTileGrid strokes lines at every tile edge position, before any
// topology perturbation, spanning one extra tile beyond the computed range
// so panning never exposes a bare edge.
func (o *OverlayRenderer) DrawTileGrid(canvas ports.Canvas, state *render.State, layout tiling.Layout) {
	panX, panY := state.Pan()
	zoom := state.Zoom()
	tileSize := layout.TileSize
	offX := state.OffsetPercentX() * tileSize
	offY := state.OffsetPercentY() * tileSize

	// Line width is divided by zoom so strokes stay one device pixel wide.
	lineWidth := 1.0 / zoom

	top := float64(layout.StartY-1)*tileSize + offY
	bottom := float64(layout.StartY+layout.CountY+1)*tileSize + offY
	left := float64(layout.StartX-1)*tileSize + offX
	right := float64(layout.StartX+layout.CountX+1)*tileSize + offX

	canvas.Push()
	canvas.Translate(panX, panY)
	canvas.Scale(zoom, zoom)
	for i := layout.StartX - 1; i <= layout.StartX+layout.CountX+1; i++ {
		x := float64(i)*tileSize + offX
		canvas.StrokeLine(x, top, x, bottom, tileGridColor, lineWidth)
	}
	for j := layout.StartY - 1; j <= layout.StartY+layout.CountY+1; j++ {
		y := float64(j)*tileSize + offY
		canvas.StrokeLine(left, y, right, y, tileGridColor, lineWidth)
	}
	canvas.Pop()
}

// DrawSeamlessTest strokes the rectangle of every placed tile, after
// topology perturbation, in a high-contrast color so a user can visually
// confirm tile borders align with pattern content.
func (o *OverlayRenderer) DrawSeamlessTest(canvas ports.Canvas, state *render.State, layout tiling.Layout) {
	panX, panY := state.Pan()
	zoom := state.Zoom()
	lineWidth := 2.0 / zoom

	canvas.Push()
	canvas.Translate(panX, panY)
	canvas.Scale(zoom, zoom)
	for _, p := range layout.Placements {
		canvas.StrokeRect(p.X, p.Y, p.Size, p.Size, seamlessTestColor, lineWidth)
	}
	canvas.Pop()
}

// DrawMeasureGrid draws dashed lines every gridOverlaySize inches (at
// render.DPI pixels per inch) in scene space, covering the pan/zoom
// transformed visible extent. The grid is a physical-scale reference and is
// unaffected by pattern scale, so it works from the state alone.
func (o *OverlayRenderer) DrawMeasureGrid(canvas ports.Canvas, state *render.State) {
	inches := state.GridOverlaySize()
	if inches <= 0 {
		return
	}

	w, h := canvas.Size()
	panX, panY := state.Pan()
	zoom := state.Zoom()
	spacing := float64(inches * render.DPI)

	// Visible extent in scene coordinates.
	sceneLeft := -panX / zoom
	sceneTop := -panY / zoom
	sceneRight := sceneLeft + float64(w)/zoom
	sceneBottom := sceneTop + float64(h)/zoom

	// Lines are stroked in device space so the dash pattern stays uniform
	// regardless of zoom.
	canvas.SetDash(6, 4)
	for x := math.Floor(sceneLeft/spacing) * spacing; x <= sceneRight; x += spacing {
		dx := panX + x*zoom
		canvas.StrokeLine(dx, 0, dx, float64(h), measureGridColor, 1)
	}
	for y := math.Floor(sceneTop/spacing) * spacing; y <= sceneBottom; y += spacing {
		dy := panY + y*zoom
		canvas.StrokeLine(0, dy, float64(w), dy, measureGridColor, 1)
	}
	canvas.SetDash()
}
