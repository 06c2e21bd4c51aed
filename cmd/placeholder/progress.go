package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/user/placeholder/pkg/pipeline"
)

const defaultTermWidth = 80

// progressBar redraws a single status line on a terminal.
type progressBar struct {
	mu      sync.Mutex
	w       io.Writer
	width   int
	percent int
	state   pipeline.RecorderState
	drawn   bool
}

// newProgressBar returns nil unless w is a terminal.
func newProgressBar(w io.Writer) *progressBar {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = defaultTermWidth
	}
	return &progressBar{w: w, width: width, percent: -1}
}

// Update implements pipeline.ProgressFunc.
func (b *progressBar) Update(p pipeline.Progress) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	percent := int(p.Fraction() * 100)
	if percent == b.percent && p.State == b.state {
		return
	}
	b.percent, b.state = percent, p.State

	fmt.Fprint(b.w, "\r"+b.line(p))
	b.drawn = true
	if p.State.Settled() {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

// Finish moves the cursor past the bar.
func (b *progressBar) Finish() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

func (b *progressBar) line(p pipeline.Progress) string {
	suffix := fmt.Sprintf(" %3d%% %d/%d %s", int(p.Fraction()*100), p.Frame, p.TotalFrames, p.State)

	// Leave one column free so the terminal never wraps.
	barWidth := b.width - len(suffix) - 3
	if barWidth < 10 {
		return strings.TrimSpace(suffix)
	}
	filled := int(p.Fraction() * float64(barWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]" + suffix
}
