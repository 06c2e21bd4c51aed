package record

import (
	"fmt"
	"time"

	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
)

// session is the state of one recording. It is never shared between calls.
type session struct {
	state   pipeline.RecorderState
	frame   int // frames painted and pushed
	total   int
	chunks  [][]byte
	nextSeq int
	bytes   int // received, including discarded chunks
	info    ports.CodecInfo
	started time.Time
	onState pipeline.ProgressFunc
}

func newSession(total int, fn pipeline.ProgressFunc) *session {
	return &session{
		state:   pipeline.StateIdle,
		total:   total,
		started: time.Now(),
		onState: fn,
	}
}

func (s *session) enter(state pipeline.RecorderState) {
	s.state = state
	s.notify()
}

func (s *session) advance() {
	s.frame++
	s.notify()
}

// append adds a chunk in arrival order. Chunks are never reordered: a
// sequence gap or repeat fails the recording.
func (s *session) append(c ports.Chunk) error {
	if c.Seq != s.nextSeq {
		return fmt.Errorf("%w: chunk %d arrived, expected %d", pipeline.ErrEncodingRuntime, c.Seq, s.nextSeq)
	}
	s.nextSeq++
	if len(c.Data) > 0 {
		s.chunks = append(s.chunks, c.Data)
		s.bytes += len(c.Data)
	}
	return nil
}

func (s *session) notify() {
	if s.onState == nil {
		return
	}
	s.onState(pipeline.Progress{
		State:       s.state,
		Frame:       s.frame,
		TotalFrames: s.total,
	})
}

type sessionReport struct {
	State       string `json:"state"`
	Codec       string `json:"codec,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
	Backend     string `json:"backend,omitempty"`
	Frames      int    `json:"frames"`
	TotalFrames int    `json:"totalFrames"`
	Chunks      int    `json:"chunks"`
	Bytes       int    `json:"bytes"`
	ElapsedMs   int64  `json:"elapsedMs"`
	Error       string `json:"error,omitempty"`
}

func (s *session) report(cause error) sessionReport {
	r := sessionReport{
		State:       s.state.String(),
		Codec:       string(s.info.Codec),
		MIMEType:    s.info.MIMEType,
		Backend:     s.info.Backend,
		Frames:      s.frame,
		TotalFrames: s.total,
		Chunks:      s.nextSeq,
		Bytes:       s.bytes,
		ElapsedMs:   time.Since(s.started).Milliseconds(),
	}
	if cause != nil {
		r.Error = cause.Error()
	}
	return r
}
