package main

import (
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

func globalFlags() []cli.Flag {
	logging := l10n.T("Logging")
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("YAML configuration file; flags override its values"),
			EnvVars: []string{"PLACEHOLDER_CONFIG"},
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			EnvVars:  []string{"PLACEHOLDER_LOG_LEVEL"},
			Category: logging,
		},
		&cli.StringFlag{
			Name:     "log-format",
			Usage:    l10n.T("Log format (text, json)"),
			EnvVars:  []string{"PLACEHOLDER_LOG_FORMAT"},
			Category: logging,
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: logging,
		},
	}
}

func assetFlags() []cli.Flag {
	size := l10n.T("Size")
	style := l10n.T("Style")
	return []cli.Flag{
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Width in pixels (1-10000, default: 1280)"), Category: size},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Height in pixels (1-10000, default: 960)"), Category: size},
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: l10n.T("Size preset, overrides width and height (see: placeholder presets)"), Category: size},
		&cli.StringFlag{Name: "bg", Usage: l10n.T("Background color (hex, default: #4A90E2)"), Category: style},
		&cli.StringFlag{Name: "text-color", Usage: l10n.T("Text color (hex, default: #FFFFFF)"), Category: style},
		&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: l10n.T("Custom label (default: dimensions)"), Category: style},
		&cli.StringFlag{Name: "font", Usage: l10n.T("TTF/OTF font file (default: bundled Go fonts)"), Category: style},
	}
}

func videoFlags() []cli.Flag {
	video := l10n.T("Video and Quality")
	return []cli.Flag{
		&cli.Float64Flag{Name: "duration", Aliases: []string{"d"}, Usage: l10n.T("Duration in seconds (0.1-60, default: 5)"), Category: video},
		&cli.IntFlag{Name: "fps", Usage: l10n.T("Frame rate (1-60, default: 30)"), Category: video},
		&cli.StringSliceFlag{Name: "codec", Usage: l10n.T("Codec preference, repeatable (vp9, vp8, h264, av1, mjpeg)"), Category: video},
		&cli.IntFlag{Name: "bitrate", Usage: l10n.T("Target bitrate in kbps (default: 2500)"), Category: video},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("JPEG quality for MJPEG (1-100)"), Category: video},
		&cli.IntFlag{Name: "timeslice", Usage: l10n.T("Chunk interval in milliseconds (default: 100)"), Category: video},
		&cli.BoolFlag{Name: "realtime", Usage: l10n.T("Pace frames in real time; --realtime=false renders as fast as possible"), Value: true, Category: video},
		&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg binary"), Category: video},
	}
}

func previewFlags() []cli.Flag {
	preview := l10n.T("Preview")
	return []cli.Flag{
		&cli.IntFlag{Name: "max-size", Usage: l10n.T("Longest side of the preview in pixels"), Value: 600, Category: preview},
		&cli.BoolFlag{Name: "data-url", Usage: l10n.T("Print the full-size image as a data URL instead of saving a preview"), Category: preview},
	}
}

func outputFlags() []cli.Flag {
	output := l10n.T("Output")
	debug := l10n.T("Debug")
	return []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output file (default: placeholder-{w}x{h}.{ext})"), Category: output},
		&cli.StringFlag{Name: "output-dir", Usage: l10n.T("Directory for relative output paths"), EnvVars: []string{"PLACEHOLDER_OUTPUT_DIR"}, Category: output},
		&cli.BoolFlag{Name: "stdout", Usage: l10n.T("Write the asset to standard output instead of a file"), Category: output},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown render summary to this path (- prints it)"), Category: output},
		&cli.BoolFlag{Name: "debug", Usage: l10n.T("Save intermediate frames and chunks"), Category: debug},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output (default: ./debug)"), Category: debug},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}
