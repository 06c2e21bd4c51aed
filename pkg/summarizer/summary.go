// Package summarizer produces human-readable reports of finished renders.
package summarizer

import "time"

// Summary contains the data collected for one render.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	RenderID    string
	Elapsed     time.Duration

	Asset    AssetInfo
	Output   OutputInfo
	Encoding EncodingInfo
}

// AssetInfo describes what was rendered.
type AssetInfo struct {
	Kind            string // "still" or "video"
	Width           int
	Height          int
	Label           string
	BackgroundColor string
	TextColor       string

	// Video only
	Duration float64 // seconds
	FPS      int
	Frames   int
}

// OutputInfo describes where the asset went.
type OutputInfo struct {
	Path     string // empty when written to stdout
	MIMEType string
	Bytes    int64
	DebugDir string
}

// EncodingInfo describes the negotiated encoder. Empty for stills.
type EncodingInfo struct {
	Requested    []string
	Codec        string
	Backend      string
	FallbackUsed bool
	Bitrate      int // kbps
}

// IsVideo reports whether the summary describes a video.
func (s *Summary) IsVideo() bool {
	return s.Asset.Kind == "video"
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder stamped with the current time.
func NewBuilder() *Builder {
	return &Builder{
		summary: &Summary{GeneratedAt: time.Now()},
	}
}

// WithRenderID sets the render identifier.
func (b *Builder) WithRenderID(id string) *Builder {
	b.summary.RenderID = id
	return b
}

// WithElapsed sets the wall-clock render time.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Elapsed = d
	return b
}

// WithAsset sets asset information.
func (b *Builder) WithAsset(asset AssetInfo) *Builder {
	b.summary.Asset = asset
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithEncoding sets encoder information.
func (b *Builder) WithEncoding(enc EncodingInfo) *Builder {
	b.summary.Encoding = enc
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
