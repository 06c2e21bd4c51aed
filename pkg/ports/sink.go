package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveStill saves a painted still image.
	SaveStill(img image.Image) error

	// SaveFrame saves a painted video frame.
	SaveFrame(index int, img image.Image) error

	// SaveChunk saves an encoder chunk as emitted.
	SaveChunk(seq int, data []byte) error

	// SaveSessionJSON saves the recorder session report as JSON.
	SaveSessionJSON(data []byte) error
}
