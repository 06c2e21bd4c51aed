// Package nullsink discards debug output.
package nullsink

import (
	"image"

	"github.com/user/placeholder/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) Enabled() bool                              { return false }
func (s *Sink) SaveStill(img image.Image) error            { return nil }
func (s *Sink) SaveFrame(index int, img image.Image) error { return nil }
func (s *Sink) SaveChunk(seq int, data []byte) error       { return nil }
func (s *Sink) SaveSessionJSON(data []byte) error          { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
