package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/user/patternshow/pkg/ports"
)

func TestCreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(120, 80, color.RGBA{R: 255, A: 255})
	if w, h := canvas.Size(); w != 120 || h != 80 {
		t.Errorf("expected 120x80, got %dx%d", w, h)
	}

	img := canvas.ToImage()
	if r0, _, _, a := img.At(60, 40).RGBA(); r0 != 0xffff || a != 0xffff {
		t.Errorf("expected red background, got %v", img.At(60, 40))
	}

	// Nil background stays transparent.
	clear := r.CreateCanvas(10, 10, nil)
	if _, _, _, a := clear.ToImage().At(5, 5).RGBA(); a != 0 {
		t.Errorf("expected transparent canvas, got alpha %d", a)
	}
}

func TestEncodeDecode_PNG(t *testing.T) {
	r := New()

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	data, err := r.EncodeImage(src, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("missing PNG signature")
	}

	decoded, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("expected 4x4, got %v", b)
	}
	// PNG is lossless.
	if r0, g, b, _ := decoded.At(1, 2).RGBA(); r0>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel not preserved: %v", decoded.At(1, 2))
	}
}

func TestEncodeImage_JPEG(t *testing.T) {
	r := New()
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	data, err := r.EncodeImage(src, ports.FormatJPEG, 85)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\xff\xd8")) {
		t.Error("missing JPEG signature")
	}

	// Out-of-range quality falls back to the default rather than failing.
	if _, err := r.EncodeImage(src, ports.FormatJPEG, 0); err != nil {
		t.Errorf("quality 0: %v", err)
	}
	if _, err := r.EncodeImage(src, ports.FormatJPEG, 101); err != nil {
		t.Errorf("quality 101: %v", err)
	}
}

func TestEncodeImage_UnsupportedFormat(t *testing.T) {
	r := New()
	if _, err := r.EncodeImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)), ports.ImageFormat(99), 0); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	r := New()
	if _, err := r.DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestResizeImage(t *testing.T) {
	r := New()

	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	dst := r.ResizeImage(src, 25, 5)
	if b := dst.Bounds(); b.Dx() != 25 || b.Dy() != 5 {
		t.Fatalf("expected 25x5, got %v", b)
	}
	// A uniform source stays uniform under resampling.
	if r0, g, b, _ := dst.At(12, 2).RGBA(); r0>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("interior pixel drifted: %v", dst.At(12, 2))
	}
}

func TestCanvas_FillAndTransform(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	// A fill under translate(10,10)+scale(2) lands at device (30..70).
	canvas.Push()
	canvas.Translate(10, 10)
	canvas.Scale(2, 2)
	canvas.FillRect(10, 10, 20, 20, color.RGBA{B: 255, A: 255})
	canvas.Pop()

	img := canvas.ToImage()
	if _, _, b, _ := img.At(50, 50).RGBA(); b != 0xffff {
		t.Errorf("expected blue inside the transformed rect, got %v", img.At(50, 50))
	}
	if _, _, b, _ := img.At(20, 20).RGBA(); b == 0xffff {
		t.Error("fill leaked outside the transformed rect")
	}

	// The transform was popped: an untransformed fill lands where given.
	canvas.FillRect(0, 0, 5, 5, color.RGBA{G: 255, A: 255})
	if _, g, _, _ := canvas.ToImage().At(2, 2).RGBA(); g != 0xffff {
		t.Error("pop did not restore the identity transform")
	}
}

func TestCanvas_DrawImageRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(60, 60, color.White)

	tile := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tile.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	// A 2x2 source stretched into a 20x20 rectangle at (20, 20).
	canvas.DrawImageRect(tile, 20, 20, 20, 20)

	img := canvas.ToImage()
	if r0, _, _, _ := img.At(30, 30).RGBA(); r0 != 0xffff {
		t.Errorf("expected red inside the blit, got %v", img.At(30, 30))
	}
	if r0, g, b, _ := img.At(10, 10).RGBA(); r0 != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("expected untouched white outside the blit, got %v", img.At(10, 10))
	}

	// Degenerate sources are ignored.
	canvas.DrawImageRect(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 0, 0, 10, 10)
}

func TestParseImageFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected ports.ImageFormat
	}{
		{"png", ports.FormatPNG},
		{"jpg", ports.FormatJPEG},
		{"jpeg", ports.FormatJPEG},
		{"webp", ports.FormatPNG}, // unknown falls back to PNG
	}
	for _, tt := range tests {
		if got := ports.ParseImageFormat(tt.in); got != tt.expected {
			t.Errorf("ParseImageFormat(%q): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}
