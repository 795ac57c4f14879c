package mocks

import (
	"image"

	"github.com/user/patternshow/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that counts saves.
type DebugSink struct {
	enabled bool

	LayoutJSONSaves    int
	PatternBufferSaves int
	CompositeSaves     int
	ExportSaves        int
}

// NewDebugSink creates a mock sink with the given enabled state.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (s *DebugSink) Enabled() bool {
	return s.enabled
}

func (s *DebugSink) SaveTileLayoutJSON(data []byte) error {
	s.LayoutJSONSaves++
	return nil
}

func (s *DebugSink) SavePatternBuffer(img image.Image) error {
	s.PatternBufferSaves++
	return nil
}

func (s *DebugSink) SaveComposite(name string, img image.Image) error {
	s.CompositeSaves++
	return nil
}

func (s *DebugSink) SaveExport(data []byte, format ports.ImageFormat) error {
	s.ExportSaves++
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
