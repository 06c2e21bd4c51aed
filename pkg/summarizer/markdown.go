package summarizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Translator maps an English label to the output language.
type Translator func(key string) string

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	t       Translator
	version string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) Option {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// WithVersion sets the version shown in the footer.
func WithVersion(v string) Option {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a formatter. Labels are English unless a
// translator is given.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{t: func(key string) string { return key }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.t("Render Summary"))

	b.WriteString(f.tableHeader())
	kind := f.t("Image")
	if s.IsVideo() {
		kind = f.t("Video")
	}
	f.row(&b, "Type", kind)
	f.row(&b, "Dimensions", fmt.Sprintf("%d × %d", s.Asset.Width, s.Asset.Height))
	if s.Asset.Label != "" {
		f.row(&b, "Label", s.Asset.Label)
	}
	if s.Asset.BackgroundColor != "" {
		f.row(&b, "Background", "`"+s.Asset.BackgroundColor+"`")
	}
	if s.Asset.TextColor != "" {
		f.row(&b, "Text Color", "`"+s.Asset.TextColor+"`")
	}
	if s.IsVideo() {
		f.row(&b, "Duration", strconv.FormatFloat(s.Asset.Duration, 'f', -1, 64)+" s")
		f.row(&b, "Frame Rate", fmt.Sprintf("%d fps", s.Asset.FPS))
		f.row(&b, "Frames", strconv.Itoa(s.Asset.Frames))
	}

	fmt.Fprintf(&b, "\n## %s\n\n", f.t("Output"))
	b.WriteString(f.tableHeader())
	path := s.Output.Path
	if path == "" {
		path = f.t("(stdout)")
	}
	f.row(&b, "File", "`"+path+"`")
	f.row(&b, "MIME Type", "`"+s.Output.MIMEType+"`")
	f.row(&b, "File Size", formatBytes(s.Output.Bytes))
	if s.Output.DebugDir != "" {
		f.row(&b, "Debug Output", "`"+s.Output.DebugDir+"`")
	}

	if s.IsVideo() {
		fmt.Fprintf(&b, "\n## %s\n\n", f.t("Encoding"))
		b.WriteString(f.tableHeader())
		f.row(&b, "Codec", s.Encoding.Codec)
		f.row(&b, "Backend", s.Encoding.Backend)
		if len(s.Encoding.Requested) > 0 {
			f.row(&b, "Preference", strings.Join(s.Encoding.Requested, " → "))
		}
		fallback := f.t("No")
		if s.Encoding.FallbackUsed {
			fallback = f.t("Yes")
		}
		f.row(&b, "Fallback Used", fallback)
		if s.Encoding.Bitrate > 0 {
			f.row(&b, "Bitrate", fmt.Sprintf("%d kbps", s.Encoding.Bitrate))
		}
	}

	b.WriteString("\n---\n\n")
	if s.RenderID != "" {
		fmt.Fprintf(&b, "%s: `%s`  \n", f.t("Render ID"), s.RenderID)
	}
	if s.Elapsed > 0 {
		fmt.Fprintf(&b, "%s: %d ms  \n", f.t("Elapsed"), s.Elapsed.Milliseconds())
	}
	generator := "placeholder"
	if f.version != "" {
		generator += " " + f.version
	}
	fmt.Fprintf(&b, "%s %s, %s\n", f.t("Generated by"), generator, s.GeneratedAt.Format(time.RFC3339))

	return b.String()
}

func (f *MarkdownFormatter) tableHeader() string {
	return fmt.Sprintf("| %s | %s |\n|---|---|\n", f.t("Item"), f.t("Value"))
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.t(label), value)
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 2; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", float64(n)/float64(div), []string{"KB", "MB", "GB"}[exp])
}
