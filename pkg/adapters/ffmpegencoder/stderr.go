package ffmpegencoder

import (
	"bytes"
	"strings"
	"sync"
)

// lastLines keeps the last n lines written to it. ffmpeg's stderr is copied
// here so failures can report what ffmpeg said.
type lastLines struct {
	mu      sync.Mutex
	partial bytes.Buffer
	lines   []string
	limit   int
}

func newLastLines(limit int) *lastLines {
	return &lastLines{limit: limit}
}

func (l *lastLines) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.partial.Write(p)
	for {
		b := l.partial.Bytes()
		i := bytes.IndexAny(b, "\n\r")
		if i < 0 {
			break
		}
		if line := strings.TrimSpace(string(b[:i])); line != "" {
			l.add(line)
		}
		l.partial.Next(i + 1)
	}
	return len(p), nil
}

func (l *lastLines) add(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
}

// String returns the buffered lines, including an unterminated last line.
func (l *lastLines) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := append([]string(nil), l.lines...)
	if rest := strings.TrimSpace(l.partial.String()); rest != "" {
		lines = append(lines, rest)
	}
	if len(lines) > l.limit {
		lines = lines[len(lines)-l.limit:]
	}
	return strings.Join(lines, "\n")
}
