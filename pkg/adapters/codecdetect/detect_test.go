package codecdetect

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/placeholder/pkg/adapters/ggrenderer"
	"github.com/user/placeholder/pkg/adapters/mjpegencoder"
	"github.com/user/placeholder/pkg/ports"
)

func recordMJPEG(t *testing.T, w, h, fps, frames int) []byte {
	t.Helper()
	session, err := mjpegencoder.New().OpenCodec(context.Background(), ports.CodecMJPEG, ports.StreamOptions{Width: w, Height: h, FPS: fps})
	if err != nil {
		t.Fatalf("OpenCodec failed: %v", err)
	}
	defer session.Close()

	if err := session.Start(0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < frames; i++ {
		if err := session.PushFrame(img); err != nil {
			t.Fatalf("PushFrame failed: %v", err)
		}
	}
	if err := session.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	var buf bytes.Buffer
	for ev := range session.Events() {
		if ev.Kind == ports.EventChunk {
			buf.Write(ev.Chunk.Data)
		}
	}
	return buf.Bytes()
}

func TestDetect_MJPEGFragmentedMP4(t *testing.T) {
	data := recordMJPEG(t, 64, 48, 10, 5)

	report, err := DetectFromBytes(data)
	if err != nil {
		t.Fatalf("DetectFromBytes failed: %v", err)
	}

	if report.Container != ContainerMP4 || report.Codec != ports.CodecMJPEG {
		t.Errorf("expected mp4/mjpeg, got %s/%s", report.Container, report.Codec)
	}
	if report.Width != 64 || report.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", report.Width, report.Height)
	}
	if report.Samples != 5 {
		t.Errorf("expected 5 samples, got %d", report.Samples)
	}
	if report.Duration != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", report.Duration)
	}
	if report.MIMEType() != "video/mp4" {
		t.Errorf("unexpected MIME %s", report.MIMEType())
	}
}

func TestDetect_MJPEGSizeFromTrackHeader(t *testing.T) {
	data := recordMJPEG(t, 200, 200, 10, 10)

	report, err := DetectFromBytes(data)
	if err != nil {
		t.Fatalf("DetectFromBytes failed: %v", err)
	}
	if report.Width != 200 || report.Height != 200 {
		t.Errorf("expected 200x200, got %dx%d", report.Width, report.Height)
	}
	if report.Duration != time.Second {
		t.Errorf("expected 1s, got %v", report.Duration)
	}
}

func TestDetect_PNG(t *testing.T) {
	data, err := ggrenderer.New().EncodeImage(image.NewRGBA(image.Rect(0, 0, 30, 20)), ports.FormatPNG, 0)
	if err != nil {
		t.Fatal(err)
	}

	report, err := DetectFromBytes(data)
	if err != nil {
		t.Fatalf("DetectFromBytes failed: %v", err)
	}
	if report.Container != ContainerPNG || report.Width != 30 || report.Height != 20 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestDetect_WebM(t *testing.T) {
	tests := []struct {
		name  string
		codec string
		want  ports.Codec
	}{
		{"vp9", "V_VP9", ports.CodecVP9},
		{"vp8", "V_VP8", ports.CodecVP8},
		{"av1", "V_AV1", ports.CodecAV1},
		{"other", "V_THEORA", CodecUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F}, []byte("webm\x86"+tt.codec)...)
			report, err := DetectFromBytes(data)
			if err != nil {
				t.Fatalf("DetectFromBytes failed: %v", err)
			}
			if report.Container != ContainerWebM || report.Codec != tt.want {
				t.Errorf("got %s/%s, want webm/%s", report.Container, report.Codec, tt.want)
			}
		})
	}
}

func TestDetect_Unrecognized(t *testing.T) {
	_, err := DetectFromBytes([]byte("plain text"))
	if !errors.Is(err, ErrUnrecognized) {
		t.Errorf("expected ErrUnrecognized, got %v", err)
	}
}

func TestDetect_TruncatedMP4(t *testing.T) {
	data := recordMJPEG(t, 16, 16, 10, 2)

	if _, err := DetectFromBytes(data[:20]); err == nil {
		t.Error("expected error for truncated mp4")
	}
}

func TestDetectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, recordMJPEG(t, 32, 32, 5, 3), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := DetectFromFile(path)
	if err != nil {
		t.Fatalf("DetectFromFile failed: %v", err)
	}
	if report.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", report.Samples)
	}

	if _, err := DetectFromFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}
