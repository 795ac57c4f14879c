// Package ggrenderer implements the drawing-target ports using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/patternshow/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas. A nil background leaves the
// canvas transparent.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	return &Canvas{dc: dc, width: width, height: height}
}

// DecodeImage decodes image data, auto-detecting the format from the
// registered codecs.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image with CatmullRom resampling, the high-quality
// path used for exports.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc     *gg.Context
	width  int
	height int
}

// Size returns the canvas dimensions in device pixels.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Push saves the current transform state.
func (c *Canvas) Push() {
	c.dc.Push()
}

// Pop restores the most recently pushed transform state.
func (c *Canvas) Pop() {
	c.dc.Pop()
}

// Translate moves the coordinate origin.
func (c *Canvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
}

// Scale multiplies the coordinate system.
func (c *Canvas) Scale(sx, sy float64) {
	c.dc.Scale(sx, sy)
}

// RotateAbout rotates the coordinate system by degrees around (x, y).
func (c *Canvas) RotateAbout(degrees, x, y float64) {
	c.dc.RotateAbout(gg.Radians(degrees), x, y)
}

// DrawImageRect draws an image scaled into the given rectangle.
func (c *Canvas) DrawImageRect(img image.Image, x, y, w, h float64) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	c.dc.Push()
	defer c.dc.Pop()

	c.dc.Translate(x, y)
	c.dc.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	c.dc.DrawImage(img, 0, 0)
}

// FillRect fills a rectangle with a solid color.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// StrokeRect strokes a rectangle outline.
func (c *Canvas) StrokeRect(x, y, w, h float64, col color.Color, lineWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
}

// StrokeLine strokes a line between two points.
func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, col color.Color, lineWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

// SetDash sets the dash pattern for subsequent strokes. No arguments
// restores solid strokes.
func (c *Canvas) SetDash(dashes ...float64) {
	c.dc.SetDash(dashes...)
}

// DrawText draws a string centered on (x, y) in the built-in font.
func (c *Canvas) DrawText(text string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// ToImage returns the canvas contents as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
