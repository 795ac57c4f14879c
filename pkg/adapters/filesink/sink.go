// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/patternshow/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	counter  int
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveTileLayoutJSON saves the computed tile placements as JSON.
func (s *Sink) SaveTileLayoutJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "tile-layout.json"), data)
}

// SavePatternBuffer saves the offscreen chroma-key pattern buffer as PNG.
func (s *Sink) SavePatternBuffer(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode pattern buffer: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "pattern-buffer.png"), data)
}

// SaveComposite saves a composed preview frame as PNG.
func (s *Sink) SaveComposite(name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode composite: %w", err)
	}
	dir := filepath.Join(s.baseDir, "composites")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	s.counter++
	path := filepath.Join(dir, fmt.Sprintf("%04d-%s.png", s.counter, name))
	return s.fs.WriteFile(path, data)
}

// SaveExport saves an encoded export buffer.
func (s *Sink) SaveExport(data []byte, format ports.ImageFormat) error {
	path := filepath.Join(s.baseDir, "export."+format.String())
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
