package mocks

import (
	"image"
	"image/color"

	"github.com/user/patternshow/pkg/ports"
)

// ImageBlit records one DrawImageRect call in both logical and device
// coordinates. Device coordinates apply the transform active at draw time,
// so tests can check framing without a real raster backend.
type ImageBlit struct {
	Img                    image.Image
	X, Y, W, H             float64
	DevX, DevY, DevW, DevH float64
}

// Line records one StrokeLine call in device coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
	Dashed         bool
}

// RectStroke records one StrokeRect call in device coordinates.
type RectStroke struct {
	X, Y, W, H float64
	Color      color.Color
}

type xform struct {
	tx, ty float64
	s      float64
}

// Canvas is an in-memory fake drawing target that records operations. It
// tracks translate/scale transforms (rotation is recorded but not applied)
// so blit positions can be verified in device space.
type Canvas struct {
	W, H int

	Blits       []ImageBlit
	Lines       []Line
	RectStrokes []RectStroke
	Fills       int
	Texts       []string
	Rotations   []float64

	cur   xform
	stack []xform
	dash  bool
}

// NewCanvas creates a fake canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, cur: xform{s: 1}}
}

func (c *Canvas) Size() (int, int) { return c.W, c.H }

func (c *Canvas) Push() {
	c.stack = append(c.stack, c.cur)
}

func (c *Canvas) Pop() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.cur.tx += dx * c.cur.s
	c.cur.ty += dy * c.cur.s
}

func (c *Canvas) Scale(sx, sy float64) {
	// Uniform scale is all the engine uses.
	c.cur.s *= sx
}

func (c *Canvas) RotateAbout(degrees, x, y float64) {
	c.Rotations = append(c.Rotations, degrees)
}

func (c *Canvas) DrawImageRect(img image.Image, x, y, w, h float64) {
	c.Blits = append(c.Blits, ImageBlit{
		Img: img,
		X:   x, Y: y, W: w, H: h,
		DevX: c.cur.tx + x*c.cur.s,
		DevY: c.cur.ty + y*c.cur.s,
		DevW: w * c.cur.s,
		DevH: h * c.cur.s,
	})
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.Fills++
}

func (c *Canvas) StrokeRect(x, y, w, h float64, col color.Color, lineWidth float64) {
	c.RectStrokes = append(c.RectStrokes, RectStroke{
		X:     c.cur.tx + x*c.cur.s,
		Y:     c.cur.ty + y*c.cur.s,
		W:     w * c.cur.s,
		H:     h * c.cur.s,
		Color: col,
	})
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, col color.Color, lineWidth float64) {
	c.Lines = append(c.Lines, Line{
		X1:     c.cur.tx + x1*c.cur.s,
		Y1:     c.cur.ty + y1*c.cur.s,
		X2:     c.cur.tx + x2*c.cur.s,
		Y2:     c.cur.ty + y2*c.cur.s,
		Dashed: c.dash,
	})
}

func (c *Canvas) SetDash(dashes ...float64) {
	c.dash = len(dashes) > 0
}

func (c *Canvas) DrawText(text string, x, y float64, col color.Color) {
	c.Texts = append(c.Texts, text)
}

func (c *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, c.W, c.H))
}

var _ ports.Canvas = (*Canvas)(nil)
