// Package tiling computes the covering set of tile placements for a viewport
// or export buffer under the active repeat topology. The computation is a
// pure function of its input, like the layout stage it is modeled on.
package tiling

import (
	"math"

	"github.com/user/patternshow/pkg/render"
)

// Margin is the number of extra tiles added on each side of the minimum
// viewport-covering count, so the viewport is never under-covered while a
// drag gesture is in flight.
const Margin = 3

// Input contains the parameters for a tile layout computation. Viewport
// dimensions are in device pixels; tile size and offsets are in logical
// (pre-transform) pixels.
type Input struct {
	ViewportWidth  float64
	ViewportHeight float64
	TileSize       float64
	PanX, PanY     float64
	Zoom           float64
	OffsetPercentX float64
	OffsetPercentY float64
	Repeat         render.RepeatType
}

// Placement is one tile blit in logical coordinates: the tile indices and
// the draw rectangle (X, Y, Size, Size).
type Placement struct {
	I, J int
	X, Y float64
	Size float64
}

// Layout is the covering set of placements plus the index ranges they span.
type Layout struct {
	Placements []Placement
	StartX     int
	StartY     int
	CountX     int
	CountY     int
	TileSize   float64
}

// Compute returns the covering set of tile placements for the input.
//
// The covering counts add a symmetric margin of Margin tiles per side beyond
// the minimum viewport-covering count, and the start indices back up by the
// same margin, so arbitrary pan and zoom never expose an uncovered edge.
//
// Topology rules: half-drop shifts drawY by half a tile for odd |i| columns;
// brick shifts drawX by half a tile for odd |j| rows. The cross-axis pairing
// (column parity perturbs Y, row parity perturbs X) matches the observed
// product behavior and must not be "corrected".
func Compute(in Input) Layout {
	countX := int(math.Ceil(in.ViewportWidth/in.TileSize/in.Zoom)) + 2*Margin
	countY := int(math.Ceil(in.ViewportHeight/in.TileSize/in.Zoom)) + 2*Margin
	startX := int(math.Floor(-in.PanX/(in.TileSize*in.Zoom))) - Margin
	startY := int(math.Floor(-in.PanY/(in.TileSize*in.Zoom))) - Margin

	placements := make([]Placement, 0, countX*countY)
	for j := startY; j < startY+countY; j++ {
		for i := startX; i < startX+countX; i++ {
			x := float64(i)*in.TileSize + in.OffsetPercentX*in.TileSize
			y := float64(j)*in.TileSize + in.OffsetPercentY*in.TileSize

			switch in.Repeat {
			case render.RepeatHalfDrop:
				if absInt(i)%2 == 1 {
					y += in.TileSize / 2
				}
			case render.RepeatBrick:
				if absInt(j)%2 == 1 {
					x += in.TileSize / 2
				}
			}

			placements = append(placements, Placement{I: i, J: j, X: x, Y: y, Size: in.TileSize})
		}
	}

	return Layout{
		Placements: placements,
		StartX:     startX,
		StartY:     startY,
		CountX:     countX,
		CountY:     countY,
		TileSize:   in.TileSize,
	}
}

// ExportFraming rescales pan and zoom by size/maxCanvasSize so that the same
// placement math over a size-by-size buffer yields a proportionally scaled
// copy of the preview crop. Tile counts and start indices are unchanged by
// the rescale because the factor cancels inside Compute.
func ExportFraming(panX, panY, zoom float64, size, maxCanvasSize int) (outPanX, outPanY, outZoom float64) {
	factor := float64(size) / float64(maxCanvasSize)
	return panX * factor, panY * factor, zoom * factor
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
