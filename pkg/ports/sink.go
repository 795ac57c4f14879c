package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate rendering results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveTileLayoutJSON saves the computed tile placements as JSON.
	SaveTileLayoutJSON(data []byte) error

	// SavePatternBuffer saves the offscreen pattern buffer rendered for a
	// chroma-key composite.
	SavePatternBuffer(img image.Image) error

	// SaveComposite saves a fully composed preview frame.
	SaveComposite(name string, img image.Image) error

	// SaveExport saves an encoded export buffer.
	SaveExport(data []byte, format ImageFormat) error
}
