package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts raster surface creation and image codec operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions.
	// A nil background leaves the canvas fully transparent.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image, auto-detecting the format.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	// Quality applies to JPEG only (0-100).
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions using
	// high-quality resampling.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas is the minimal drawing target shared by the tile compositor, the
// overlay renderer, and the chroma-key compositor. Implementations carry a
// transform stack; all coordinates are interpreted in the current transform.
type Canvas interface {
	// Size returns the canvas dimensions in device pixels.
	Size() (width, height int)

	// Push saves the current transform state.
	Push()

	// Pop restores the most recently pushed transform state.
	Pop()

	// Translate moves the coordinate origin.
	Translate(dx, dy float64)

	// Scale multiplies the coordinate system by sx, sy.
	Scale(sx, sy float64)

	// RotateAbout rotates the coordinate system by degrees around (x, y).
	RotateAbout(degrees, x, y float64)

	// DrawImageRect draws an image scaled into the rectangle (x, y, w, h).
	DrawImageRect(img image.Image, x, y, w, h float64)

	// FillRect fills a rectangle with a solid color.
	FillRect(x, y, w, h float64, c color.Color)

	// StrokeRect strokes a rectangle outline.
	StrokeRect(x, y, w, h float64, c color.Color, lineWidth float64)

	// StrokeLine strokes a line between two points.
	StrokeLine(x1, y1, x2, y2 float64, c color.Color, lineWidth float64)

	// SetDash sets the dash pattern for subsequent strokes.
	// Calling it with no arguments restores solid strokes.
	SetDash(dashes ...float64)

	// DrawText draws a text string anchored at (x, y).
	DrawText(text string, x, y float64, c color.Color)

	// ToImage returns the canvas contents as an image.Image.
	ToImage() image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// String returns the conventional file extension for the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	default:
		return "png"
	}
}

// ParseImageFormat parses "png", "jpg" or "jpeg" into an ImageFormat.
// Unknown strings fall back to PNG.
func ParseImageFormat(s string) ImageFormat {
	switch s {
	case "jpg", "jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}
