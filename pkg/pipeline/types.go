package pipeline

import (
	"fmt"
	"math"
	"strconv"
)

// =============================================================================
// Configuration
// =============================================================================

// Dimension limits enforced by the caller layer before a render.
const (
	MinDimension = 1
	MaxDimension = 10000
	MinDuration  = 0.1
	MaxDuration  = 60.0
	MinFPS       = 1
	MaxFPS       = 60
	DefaultFPS   = 30
)

// AssetConfig describes a placeholder image.
type AssetConfig struct {
	Width           int
	Height          int
	BackgroundColor string
	TextColor       string
	Text            *string // nil or empty: "{width} × {height}"
}

// Label returns the text painted in the middle of the asset.
func (c AssetConfig) Label() string {
	if c.Text != nil && *c.Text != "" {
		return *c.Text
	}
	return fmt.Sprintf("%d × %d", c.Width, c.Height)
}

// VideoConfig describes a placeholder video.
type VideoConfig struct {
	AssetConfig
	Duration float64 // seconds
	FPS      int
}

// TotalFrames returns round(Duration*FPS), never less than one.
func (c VideoConfig) TotalFrames() int {
	n := int(math.Round(c.Duration * float64(c.FPS)))
	if n < 1 {
		return 1
	}
	return n
}

// FormatSeconds formats seconds the way they appear in overlays and file names:
// no trailing zeros, no exponent (1, 2.5, 0.1).
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// =============================================================================
// Frame overlay
// =============================================================================

// Overlay is the temporal annotation painted on video frames.
type Overlay struct {
	Frame       int
	TotalFrames int
	FPS         int
	Duration    float64
}

// NewOverlay returns the overlay for frame of cfg.
func NewOverlay(cfg VideoConfig, frame int) Overlay {
	return Overlay{
		Frame:       frame,
		TotalFrames: cfg.TotalFrames(),
		FPS:         cfg.FPS,
		Duration:    cfg.Duration,
	}
}

// Elapsed returns the frame's presentation time in seconds.
func (o Overlay) Elapsed() float64 {
	if o.FPS <= 0 {
		return 0
	}
	return float64(o.Frame) / float64(o.FPS)
}

// Progress returns Frame/TotalFrames.
func (o Overlay) Progress() float64 {
	if o.TotalFrames <= 0 {
		return 0
	}
	return float64(o.Frame) / float64(o.TotalFrames)
}

// TimerText returns "{elapsed}s / {duration}s" with elapsed at one decimal.
func (o Overlay) TimerText() string {
	return fmt.Sprintf("%.1fs / %ss", o.Elapsed(), FormatSeconds(o.Duration))
}

// =============================================================================
// Output
// =============================================================================

// AssetKind distinguishes stills from videos.
type AssetKind string

const (
	KindStill AssetKind = "still"
	KindVideo AssetKind = "video"
)

// EncodedAsset is a finished asset. Data must not be modified after it is returned.
type EncodedAsset struct {
	Kind     AssetKind
	Data     []byte
	MIMEType string
	Ext      string // file extension without the dot
	Width    int
	Height   int

	// Video only
	Duration     float64
	Frames       int
	Codec        string
	Backend      string
	FallbackUsed bool
}

// Size returns the length of the encoded data.
func (a EncodedAsset) Size() int64 {
	return int64(len(a.Data))
}

// =============================================================================
// Recording state
// =============================================================================

// RecorderState is the lifecycle of one video render.
type RecorderState int

const (
	StateIdle RecorderState = iota
	StateNegotiating
	StateRecording
	StateFlushing
	StateSucceeded
	StateFailed
	StateCancelled
)

// String returns the string representation of the state.
func (s RecorderState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNegotiating:
		return "negotiating"
	case StateRecording:
		return "recording"
	case StateFlushing:
		return "flushing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Settled reports whether the state is terminal.
func (s RecorderState) Settled() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// Progress is reported while a video renders.
type Progress struct {
	State       RecorderState
	Frame       int // frames painted so far
	TotalFrames int
}

// Fraction returns Frame/TotalFrames in [0, 1].
func (p Progress) Fraction() float64 {
	if p.TotalFrames <= 0 {
		return 0
	}
	f := float64(p.Frame) / float64(p.TotalFrames)
	if f > 1 {
		return 1
	}
	return f
}

// ProgressFunc receives progress updates. It is called from the render goroutine.
type ProgressFunc func(Progress)
