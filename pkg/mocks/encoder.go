package mocks

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/user/placeholder/pkg/ports"
)

// ErrInjected is the error emitted by EncoderSession when a failure is injected.
var ErrInjected = errors.New("mocks: injected encoder failure")

// StreamEncoder is a mock implementation of ports.StreamEncoder.
// By default it opens a session for the first preference.
type StreamEncoder struct {
	mu sync.Mutex

	OpenFunc func(ctx context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, error)

	// Template configures sessions created by the default Open.
	Template EncoderSession

	// Recorded calls for verification
	OpenCalls [][]ports.Codec
	Options   []ports.StreamOptions
	Sessions  []*EncoderSession
}

func (m *StreamEncoder) Open(ctx context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, error) {
	m.mu.Lock()
	m.OpenCalls = append(m.OpenCalls, append([]ports.Codec(nil), preferences...))
	m.Options = append(m.Options, opts)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, opts, preferences)
	}
	if len(preferences) == 0 {
		return nil, fmt.Errorf("mocks: no codec preferences")
	}

	s := NewEncoderSession(ports.CodecInfo{
		Codec:    preferences[0],
		MIMEType: "video/webm;codecs=" + string(preferences[0]),
		Ext:      "webm",
		Backend:  "mock",
	})
	s.ChunkEvery = m.Template.ChunkEvery
	s.FailAfterFrames = m.Template.FailAfterFrames
	s.Silent = m.Template.Silent
	s.SwapChunks = m.Template.SwapChunks
	s.HoldChunks = m.Template.HoldChunks
	s.PushErr = m.Template.PushErr

	m.mu.Lock()
	m.Sessions = append(m.Sessions, s)
	m.mu.Unlock()
	return s, nil
}

var _ ports.StreamEncoder = (*StreamEncoder)(nil)

// EncoderSession is a deterministic mock of ports.EncoderSession.
// It emits a synthetic chunk "chunk-{seq};" every ChunkEvery frames and a
// final chunk for any remaining frames on Stop.
type EncoderSession struct {
	mu     sync.Mutex
	info   ports.CodecInfo
	events chan ports.SessionEvent
	closed bool

	// Behaviour knobs
	ChunkEvery      int   // frames per chunk, default 1
	FailAfterFrames int   // emit EventError once this many frames were pushed (0 disables)
	Silent          bool  // never emit chunks
	SwapChunks      bool  // emit the first two chunks with swapped sequence numbers
	HoldChunks      bool  // hold every chunk until Stop (delayed callbacks)
	PushErr         error // returned from PushFrame

	// Recorded calls for verification
	StartCalled bool
	Timeslice   time.Duration
	Frames      int
	StopCalled  bool
	CloseCalled int

	pending int
	seq     int
	held    []ports.SessionEvent
}

// NewEncoderSession creates a mock session reporting info.
func NewEncoderSession(info ports.CodecInfo) *EncoderSession {
	return &EncoderSession{
		info:   info,
		events: make(chan ports.SessionEvent, 1024),
	}
}

func (m *EncoderSession) Info() ports.CodecInfo {
	return m.info
}

func (m *EncoderSession) Start(timeslice time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCalled = true
	m.Timeslice = timeslice
	return nil
}

func (m *EncoderSession) PushFrame(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PushErr != nil {
		return m.PushErr
	}
	if m.closed {
		return errors.New("mocks: session closed")
	}

	m.Frames++
	m.pending++

	if m.FailAfterFrames > 0 && m.Frames == m.FailAfterFrames {
		m.send(ports.SessionEvent{Kind: ports.EventError, Err: ErrInjected})
		return nil
	}

	every := m.ChunkEvery
	if every <= 0 {
		every = 1
	}
	if m.pending >= every {
		m.emitChunk()
	}
	return nil
}

func (m *EncoderSession) Events() <-chan ports.SessionEvent {
	return m.events
}

func (m *EncoderSession) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StopCalled = true
	if m.closed {
		return nil
	}
	if m.pending > 0 {
		m.emitChunk()
	}
	for _, ev := range m.held {
		m.events <- ev
	}
	m.held = nil
	m.events <- ports.SessionEvent{Kind: ports.EventStopped}
	m.closed = true
	close(m.events)
	return nil
}

func (m *EncoderSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalled++
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Closed reports whether the event channel has been closed.
func (m *EncoderSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *EncoderSession) emitChunk() {
	m.pending = 0
	if m.Silent {
		return
	}

	seq := m.seq
	m.seq++
	if m.SwapChunks && seq < 2 {
		seq = 1 - seq
	}

	ev := ports.SessionEvent{
		Kind:  ports.EventChunk,
		Chunk: ports.Chunk{Seq: seq, Data: []byte(fmt.Sprintf("chunk-%d;", seq))},
	}
	if m.HoldChunks {
		m.held = append(m.held, ev)
		return
	}
	m.send(ev)
}

func (m *EncoderSession) send(ev ports.SessionEvent) {
	if m.closed {
		return
	}
	m.events <- ev
}

var _ ports.EncoderSession = (*EncoderSession)(nil)

// CodecBackend is a mock implementation of ports.CodecBackend.
type CodecBackend struct {
	BackendName string
	Supported   map[ports.Codec]bool
	OpenErr     error

	// Recorded calls for verification
	Attempts []ports.Codec
	Sessions []*EncoderSession
}

func (m *CodecBackend) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

func (m *CodecBackend) OpenCodec(ctx context.Context, codec ports.Codec, opts ports.StreamOptions) (ports.EncoderSession, error) {
	m.Attempts = append(m.Attempts, codec)
	if !m.Supported[codec] {
		if m.OpenErr != nil {
			return nil, m.OpenErr
		}
		return nil, fmt.Errorf("mocks: codec %s not supported by %s", codec, m.Name())
	}
	s := NewEncoderSession(ports.CodecInfo{
		Codec:    codec,
		MIMEType: "video/test;codecs=" + string(codec),
		Ext:      "bin",
		Backend:  m.Name(),
	})
	m.Sessions = append(m.Sessions, s)
	return s, nil
}

var _ ports.CodecBackend = (*CodecBackend)(nil)
