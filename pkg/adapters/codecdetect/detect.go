// Package codecdetect identifies the container and codec of a rendered asset.
// It is used by the inspect command and to verify encoder output in tests.
package codecdetect

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/placeholder/pkg/ports"
)

// Container identifies a file format.
type Container string

const (
	ContainerPNG     Container = "png"
	ContainerMP4     Container = "mp4"
	ContainerWebM    Container = "webm"
	ContainerUnknown Container = "unknown"
)

// CodecUnknown is reported when the container is recognized but the codec is not.
const CodecUnknown ports.Codec = "unknown"

// ErrUnrecognized is returned when the data matches no supported container.
var ErrUnrecognized = errors.New("codecdetect: unrecognized format")

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	ebmlMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}
)

// Report describes a probed asset. Samples and Duration are only known for
// MP4 files.
type Report struct {
	Container Container
	Codec     ports.Codec
	Width     int
	Height    int
	Samples   int
	Duration  time.Duration
}

// MIMEType returns the MIME type matching the report.
func (r Report) MIMEType() string {
	switch r.Container {
	case ContainerPNG:
		return "image/png"
	case ContainerMP4:
		return "video/mp4"
	case ContainerWebM:
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

// DetectFromFile probes the file at path.
func DetectFromFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{Container: ContainerUnknown}, fmt.Errorf("read file: %w", err)
	}
	return DetectFromBytes(data)
}

// DetectFromBytes probes an in-memory asset.
func DetectFromBytes(data []byte) (Report, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return detectPNG(data)
	case bytes.HasPrefix(data, ebmlMagic):
		return detectWebM(data), nil
	case len(data) >= 8 && string(data[4:8]) == "ftyp":
		return DetectFromReader(bytes.NewReader(data))
	default:
		return Report{Container: ContainerUnknown, Codec: CodecUnknown}, ErrUnrecognized
	}
}

// DetectFromReader probes an MP4 stream.
func DetectFromReader(reader io.ReadSeeker) (Report, error) {
	report := Report{Container: ContainerMP4, Codec: CodecUnknown}

	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return report, fmt.Errorf("decode mp4: %w", err)
	}

	// Reset reader position for subsequent reads
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return report, fmt.Errorf("seek: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return report, fmt.Errorf("no moov box")
	}

	for _, trak := range moov.Traks {
		if !describeTrack(trak, &report) {
			continue
		}
		if mp4File.IsFragmented() {
			if err := countFragments(mp4File, moov, trak, &report); err != nil {
				return report, err
			}
		} else if stbl := trak.Mdia.Minf.Stbl; stbl.Stsz != nil {
			report.Samples = int(stbl.Stsz.SampleNumber)
			if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
				report.Duration = ticks(mdhd.Duration, mdhd.Timescale)
			}
		}
		return report, nil
	}

	return report, fmt.Errorf("no video track found")
}

func describeTrack(trak *mp4.TrakBox, report *Report) bool {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return false
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			report.Codec = ports.CodecH264
		case "av01":
			report.Codec = ports.CodecAV1
		case "jpeg", "mjpa", "mjpg":
			report.Codec = ports.CodecMJPEG
		case "vp09":
			report.Codec = ports.CodecVP9
		case "vp08":
			report.Codec = ports.CodecVP8
		default:
			continue
		}
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			report.Width = int(vse.Width)
			report.Height = int(vse.Height)
		}
		// mp4ff decodes unknown sample entries such as jpeg as opaque boxes;
		// the track header carries the size as 16.16 fixed point.
		if (report.Width == 0 || report.Height == 0) && trak.Tkhd != nil {
			report.Width = int(uint32(trak.Tkhd.Width) >> 16)
			report.Height = int(uint32(trak.Tkhd.Height) >> 16)
		}
		return true
	}
	return false
}

func countFragments(f *mp4.File, moov *mp4.MoovBox, trak *mp4.TrakBox, report *Report) error {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		trex = moov.Mvex.Trex
	}

	var total uint64
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return fmt.Errorf("read fragment samples: %w", err)
			}
			for _, s := range samples {
				total += uint64(s.Dur)
			}
			report.Samples += len(samples)
		}
	}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		report.Duration = ticks(total, mdhd.Timescale)
	}
	return nil
}

func ticks(n uint64, timescale uint32) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(timescale)
}

func detectPNG(data []byte) (Report, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Report{Container: ContainerPNG, Codec: CodecUnknown}, fmt.Errorf("decode png: %w", err)
	}
	return Report{Container: ContainerPNG, Codec: "png", Width: cfg.Width, Height: cfg.Height}, nil
}

// detectWebM looks for the Matroska CodecID strings rather than walking the
// EBML tree; the recorder writes a single video track.
func detectWebM(data []byte) Report {
	report := Report{Container: ContainerWebM, Codec: CodecUnknown}
	switch {
	case bytes.Contains(data, []byte("V_VP9")):
		report.Codec = ports.CodecVP9
	case bytes.Contains(data, []byte("V_VP8")):
		report.Codec = ports.CodecVP8
	case bytes.Contains(data, []byte("V_AV1")):
		report.Codec = ports.CodecAV1
	}
	return report
}
