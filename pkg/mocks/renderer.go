// Package mocks provides test doubles for the ports interfaces.
package mocks

import (
	"image"
	"image/color"

	"github.com/user/patternshow/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Canvases collects every canvas handed out by CreateCanvas.
	Canvases []*Canvas

	// ResizeCalls records the requested dimensions of each ResizeImage call.
	ResizeCalls []image.Point
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := NewCanvas(width, height)
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte("encoded"), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeCalls = append(m.ResizeCalls, image.Point{X: width, Y: height})
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)
