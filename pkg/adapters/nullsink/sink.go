// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/patternshow/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveTileLayoutJSON does nothing.
func (s *Sink) SaveTileLayoutJSON(data []byte) error {
	return nil
}

// SavePatternBuffer does nothing.
func (s *Sink) SavePatternBuffer(img image.Image) error {
	return nil
}

// SaveComposite does nothing.
func (s *Sink) SaveComposite(name string, img image.Image) error {
	return nil
}

// SaveExport does nothing.
func (s *Sink) SaveExport(data []byte, format ports.ImageFormat) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
