// Package main provides the CLI entry point for placeholder.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	// Either file may be absent; variables already set in the environment win.
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

// newApp builds the command tree. Output goes to app.Writer and diagnostics
// to app.ErrWriter so tests can capture both.
func newApp() *cli.App {
	return &cli.App{
		Name:    "placeholder",
		Usage:   l10n.T("Generate placeholder images and videos"),
		Version: version,
		Description: l10n.T("placeholder renders solid-color PNG images and timed WebM/MP4 videos " +
			"labeled with their dimensions, for mockups and layout testing."),
		Flags:                globalFlags(),
		Commands:             commands(),
		Writer:               os.Stdout,
		ErrWriter:            os.Stderr,
		EnableBashCompletion: true,
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "image",
			Usage:  l10n.T("Render a placeholder PNG image"),
			Flags:  concat(assetFlags(), outputFlags()),
			Action: runImage,
		},
		{
			Name:   "video",
			Usage:  l10n.T("Record a placeholder video"),
			Flags:  concat(assetFlags(), videoFlags(), outputFlags()),
			Action: runVideo,
		},
		{
			Name:   "preview",
			Usage:  l10n.T("Render a scaled-down preview or a data URL"),
			Flags:  concat(assetFlags(), previewFlags(), outputFlags()),
			Action: runPreview,
		},
		{
			Name:   "presets",
			Usage:  l10n.T("List size presets"),
			Action: runPresets,
		},
		{
			Name:      "inspect",
			Usage:     l10n.T("Report the container and codec of a rendered file"),
			ArgsUsage: "FILE",
			Action:    runInspect,
		},
		{
			Name:  "version",
			Usage: l10n.T("Show version and encoder availability"),
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg binary")},
			},
			Action: runVersion,
		},
	}
}
