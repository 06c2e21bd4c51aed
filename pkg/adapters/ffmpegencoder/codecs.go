package ffmpegencoder

import (
	"fmt"
	"strconv"

	"github.com/user/placeholder/pkg/ports"
)

// codecSpec maps a negotiable codec to an ffmpeg encoder and container.
type codecSpec struct {
	encoder  string // ffmpeg encoder name as listed by -encoders
	format   string // ffmpeg muxer
	mimeType string
	ext      string
	args     []string
}

var codecSpecs = map[ports.Codec]codecSpec{
	ports.CodecVP9: {
		encoder:  "libvpx-vp9",
		format:   "webm",
		mimeType: "video/webm;codecs=vp9",
		ext:      "webm",
		args:     []string{"-deadline", "realtime", "-cpu-used", "8", "-row-mt", "1"},
	},
	ports.CodecVP8: {
		encoder:  "libvpx",
		format:   "webm",
		mimeType: "video/webm;codecs=vp8",
		ext:      "webm",
		args:     []string{"-deadline", "realtime", "-cpu-used", "8"},
	},
	ports.CodecH264: {
		encoder:  "libx264",
		format:   "mp4",
		mimeType: "video/mp4;codecs=avc1",
		ext:      "mp4",
		args: []string{
			"-preset", "veryfast",
			// yuv420p needs even dimensions
			"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
			// Fragmented MP4 can be written to a pipe
			"-movflags", "frag_keyframe+empty_moov+default_base_moof",
		},
	},
	ports.CodecAV1: {
		encoder:  "libaom-av1",
		format:   "webm",
		mimeType: "video/webm;codecs=av01",
		ext:      "webm",
		args:     []string{"-usage", "realtime", "-cpu-used", "8", "-row-mt", "1"},
	},
}

// SupportedCodecs returns the codecs this backend knows how to request.
func SupportedCodecs() []ports.Codec {
	return []ports.Codec{ports.CodecVP9, ports.CodecVP8, ports.CodecH264, ports.CodecAV1}
}

// buildArgs returns the ffmpeg arguments for a raw RGBA stdin to container stdout pipeline.
func buildArgs(spec codecSpec, opts ports.StreamOptions) []string {
	bitrate := opts.Bitrate
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", strconv.Itoa(opts.FPS),
		"-i", "pipe:0",
		"-an",
		"-c:v", spec.encoder,
		"-pix_fmt", "yuv420p",
		"-b:v", fmt.Sprintf("%dk", bitrate),
	}
	args = append(args, spec.args...)
	args = append(args, "-f", spec.format, "pipe:1")
	return args
}
