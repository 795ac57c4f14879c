package render

import (
	"fmt"
	"image"
)

// PatternImage is an immutable decoded pattern asset. It holds a reference
// to the decoded raster, never a copy; the image-acquisition collaborator
// owns decoding. Dimensions are validated once at construction so tile-size
// math never sees a degenerate image.
type PatternImage struct {
	img    image.Image
	width  int
	height int
}

// NewPatternImage wraps a decoded image, rejecting nil or zero-sized input.
func NewPatternImage(img image.Image) (*PatternImage, error) {
	if img == nil {
		return nil, fmt.Errorf("pattern image is nil")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("pattern image has degenerate dimensions %dx%d", b.Dx(), b.Dy())
	}
	return &PatternImage{img: img, width: b.Dx(), height: b.Dy()}, nil
}

// Image returns the decoded raster.
func (p *PatternImage) Image() image.Image { return p.img }

// Width returns the pattern width in pixels. Always positive.
func (p *PatternImage) Width() int { return p.width }

// Height returns the pattern height in pixels. Always positive.
func (p *PatternImage) Height() int { return p.height }
