package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/placeholder/pkg/mocks"
)

func videoSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		RenderID:    "0b7c3f9e-1111-4222-8333-444455556666",
		Elapsed:     2300 * time.Millisecond,
		Asset: AssetInfo{
			Kind: "video", Width: 1280, Height: 720, Label: "1280 × 720",
			BackgroundColor: "#4A90E2", TextColor: "#FFFFFF",
			Duration: 2.5, FPS: 30, Frames: 75,
		},
		Output: OutputInfo{
			Path: "out/placeholder-1280x720-2.5s.webm", MIMEType: "video/webm;codecs=vp8", Bytes: 1024 * 1024,
		},
		Encoding: EncodingInfo{
			Requested: []string{"vp9", "vp8"}, Codec: "vp8", Backend: "ffmpeg", FallbackUsed: true, Bitrate: 2500,
		},
	}
}

func TestMarkdownFormatter_Video(t *testing.T) {
	result := NewMarkdownFormatter().Format(videoSummary())

	checks := []string{
		"# Render Summary",
		"| Type | Video |",
		"| Dimensions | 1280 × 720 |",
		"| Duration | 2.5 s |",
		"| Frame Rate | 30 fps |",
		"| Frames | 75 |",
		"placeholder-1280x720-2.5s.webm",
		"| File Size | 1.00 MB |",
		"## Encoding",
		"| Codec | vp8 |",
		"| Preference | vp9 → vp8 |",
		"| Fallback Used | Yes |",
		"| Bitrate | 2500 kbps |",
		"0b7c3f9e-1111-4222-8333-444455556666",
		"2300 ms",
		"2026-01-15T10:30:00Z",
	}
	for _, want := range checks {
		if !strings.Contains(result, want) {
			t.Errorf("expected output to contain %q\n%s", want, result)
		}
	}
}

func TestMarkdownFormatter_StillOmitsVideoSections(t *testing.T) {
	s := &Summary{
		GeneratedAt: time.Now(),
		Asset:       AssetInfo{Kind: "still", Width: 100, Height: 50, Label: "100 × 50"},
		Output:      OutputInfo{Path: "placeholder-100x50.png", MIMEType: "image/png", Bytes: 100},
	}

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, "| Type | Image |") {
		t.Error("expected image type")
	}
	for _, unwanted := range []string{"## Encoding", "Frame Rate", "Duration"} {
		if strings.Contains(result, unwanted) {
			t.Errorf("still summary should not contain %q", unwanted)
		}
	}
}

func TestMarkdownFormatter_Stdout(t *testing.T) {
	s := &Summary{GeneratedAt: time.Now(), Asset: AssetInfo{Kind: "still"}}

	if !strings.Contains(NewMarkdownFormatter().Format(s), "(stdout)") {
		t.Error("expected stdout marker when no path is set")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Render Summary": "レンダリングサマリー",
			"Dimensions":     "サイズ",
			"Fallback Used":  "フォールバック",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(videoSummary())

	for _, want := range []string{"レンダリングサマリー", "サイズ", "フォールバック"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(videoSummary())

	if !strings.Contains(result, "placeholder v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	s := NewBuilder().
		WithRenderID("id-1").
		WithElapsed(time.Second).
		WithAsset(AssetInfo{Kind: "video", Width: 10, Height: 10}).
		WithOutput(OutputInfo{Path: "a.webm"}).
		WithEncoding(EncodingInfo{Codec: "vp9"}).
		Build()

	if s.RenderID != "id-1" || s.Elapsed != time.Second || !s.IsVideo() {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Output.Path != "a.webm" || s.Encoding.Codec != "vp9" {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

// idFormatter formats only the render ID.
type idFormatter struct{}

func (idFormatter) Format(s *Summary) string { return "id=" + s.RenderID }

func TestWriter(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(idFormatter{}, fs)

	if err := w.Write("reports/summary.md", &Summary{RenderID: "x"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("reports/summary.md")
	if !ok || string(data) != "id=x" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriter_Print(t *testing.T) {
	var b strings.Builder
	if err := NewWriter(idFormatter{}, mocks.NewFileSystem()).Print(&b, &Summary{RenderID: "y"}); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if b.String() != "id=y" {
		t.Errorf("Print wrote %q", b.String())
	}
}

func TestWriter_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("denied") }

	if err := NewWriter(NewMarkdownFormatter(), fs).Write("s.md", videoSummary()); err == nil {
		t.Error("expected error")
	}
}
