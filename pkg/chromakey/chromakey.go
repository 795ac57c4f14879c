// Package chromakey merges a rendered pattern into a product mockup texture
// by substituting every pixel of the mockup's key-colored print region with
// the corresponding pattern pixel.
package chromakey

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/user/patternshow/pkg/compose"
	"github.com/user/patternshow/pkg/ports"
	"github.com/user/patternshow/pkg/render"
)

// Display fraction of the shorter viewport dimension the composite occupies
// at mockup zoom 1.0.
const displayFraction = 0.72

// Compositor renders the pattern behind a mockup's chroma-keyed region and
// draws the rotated composite into the main surface.
type Compositor struct {
	renderer ports.Renderer
	tiles    *compose.Compositor
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewCompositor creates a new chroma-key Compositor. The tile compositor is
// reused so mockup rendering and the main preview share one placement path.
func NewCompositor(renderer ports.Renderer, tiles *compose.Compositor, sink ports.DebugSink, logger ports.Logger) *Compositor {
	return &Compositor{
		renderer: renderer,
		tiles:    tiles,
		sink:     sink,
		logger:   logger.WithComponent("chromakey"),
	}
}

// Composite renders the pattern into an offscreen buffer the size of the
// mockup's display area at the mockup's own zoom (not the main viewport
// zoom), substitutes every key-colored mockup pixel with the pattern pixel
// at the identical coordinate, rotates the result about its center by the
// state's mockup rotation, and draws it into canvas scaled so its largest
// dimension is displayFraction x min(viewport) x mockupZoom.
func (c *Compositor) Composite(canvas ports.Canvas, state *render.State, mockup image.Image) error {
	if state.Pattern() == nil {
		return fmt.Errorf("no pattern loaded")
	}
	if mockup == nil {
		return fmt.Errorf("mockup texture is nil")
	}

	bounds := mockup.Bounds()
	buf := c.renderer.CreateCanvas(bounds.Dx(), bounds.Dy(), nil)

	panX, panY := state.Pan()
	if _, err := c.tiles.RenderTiles(buf, state, panX, panY, state.MockupZoom(), false); err != nil {
		return fmt.Errorf("render pattern buffer: %w", err)
	}

	pattern := buf.ToImage()
	if c.sink.Enabled() {
		c.sink.SavePatternBuffer(pattern)
	}

	keyed := Substitute(mockup, pattern)

	w, h := canvas.Size()
	maxDim := displayFraction * math.Min(float64(w), float64(h)) * state.MockupZoom()
	mw, mh := float64(bounds.Dx()), float64(bounds.Dy())
	factor := maxDim / math.Max(mw, mh)
	dw, dh := mw*factor, mh*factor
	x := (float64(w) - dw) / 2
	y := (float64(h) - dh) / 2

	canvas.Push()
	canvas.RotateAbout(state.MockupRotate(), x+dw/2, y+dh/2)
	canvas.DrawImageRect(keyed, x, y, dw, dh)
	canvas.Pop()

	c.logger.Debug("Composited %s mockup at %.0fx%.0f, rotation %.1f", state.Mockup(), dw, dh, state.MockupRotate())
	return nil
}

// IsKeyColor classifies a non-premultiplied RGBA pixel as key color:
// strongly green, clearly dominant over red and blue, and not transparent.
func IsKeyColor(r, g, b, a uint8) bool {
	return g > 200 &&
		int(g)-int(r) > 50 &&
		int(g)-int(b) > 50 &&
		r < 50 &&
		b < 50 &&
		a > 0
}

// Substitute returns a copy of the mockup in which every key-colored pixel
// is replaced, alpha included, by the pattern pixel at the identical
// coordinate. Non-key pixels are left untouched. Pattern pixels outside the
// pattern bounds leave the mockup pixel unchanged. The mockup is never
// written to: callers cache textures and reuse them across composites.
func Substitute(mockup, pattern image.Image) *image.NRGBA {
	out := cloneNRGBA(mockup)
	pat := toNRGBA(pattern)

	b := out.Bounds()
	pb := pat.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := out.PixOffset(x, y)
			r, g, bl, a := out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3]
			if !IsKeyColor(r, g, bl, a) {
				continue
			}
			if x < pb.Min.X || x >= pb.Max.X || y < pb.Min.Y || y >= pb.Max.Y {
				continue
			}
			j := pat.PixOffset(x, y)
			copy(out.Pix[i:i+4], pat.Pix[j:j+4])
		}
	}
	return out
}

// toNRGBA converts an image to non-premultiplied RGBA with zero-based
// bounds, so channel thresholds apply to the raw color values. The input may
// be returned as-is, so the result is read-only.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return cloneNRGBA(img)
}

// cloneNRGBA is toNRGBA without the aliasing fast path: the result is always
// a fresh allocation, safe to write to.
func cloneNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
