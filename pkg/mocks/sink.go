package mocks

import (
	"image"
	"sync"

	"github.com/user/placeholder/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Still       image.Image
	Frames      map[int]image.Image
	Chunks      map[int][]byte
	SessionJSON []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Frames:  make(map[int]image.Image),
		Chunks:  make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveStill(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Still = img
	return nil
}

func (m *DebugSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

func (m *DebugSink) SaveChunk(seq int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Chunks[seq] = data
	return nil
}

func (m *DebugSink) SaveSessionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                              { return false }
func (m *NullSink) SaveStill(img image.Image) error            { return nil }
func (m *NullSink) SaveFrame(index int, img image.Image) error { return nil }
func (m *NullSink) SaveChunk(seq int, data []byte) error       { return nil }
func (m *NullSink) SaveSessionJSON(data []byte) error          { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
