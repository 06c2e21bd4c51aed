package logger

import (
	"io"

	"github.com/ideamans/go-l10n"
	"github.com/rs/zerolog"
	"github.com/user/placeholder/pkg/ports"
)

// JSONLogger writes one structured JSON object per message using zerolog.
// Messages are translated the same way as ConsoleLogger; the untranslated
// key is kept in the "key" field so log processors can match on it.
type JSONLogger struct {
	log zerolog.Logger
}

// NewJSON creates a JSON logger writing to w.
func NewJSON(level ports.LogLevel, w io.Writer) *JSONLogger {
	return &JSONLogger{
		log: zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

// NewNoop returns a logger that drops every message. Adapters fall back to
// it when constructed without a logger, and --quiet selects it.
func NewNoop() *JSONLogger {
	return &JSONLogger{log: zerolog.Nop()}
}

var _ ports.Logger = (*JSONLogger)(nil)

func (l *JSONLogger) Debug(msg string, args ...interface{}) {
	l.emit(l.log.Debug(), msg, args)
}

func (l *JSONLogger) Info(msg string, args ...interface{}) {
	l.emit(l.log.Info(), msg, args)
}

func (l *JSONLogger) Warn(msg string, args ...interface{}) {
	l.emit(l.log.Warn(), msg, args)
}

func (l *JSONLogger) Error(msg string, args ...interface{}) {
	l.emit(l.log.Error(), msg, args)
}

// WithComponent returns a logger that adds a "component" field.
func (l *JSONLogger) WithComponent(component string) ports.Logger {
	return &JSONLogger{log: l.log.With().Str("component", component).Logger()}
}

func (l *JSONLogger) emit(e *zerolog.Event, msg string, args []interface{}) {
	// disabled levels return a nil event
	if e == nil {
		return
	}
	e.Str("key", msg).Msg(l10n.F(msg, args...))
}

func zerologLevel(level ports.LogLevel) zerolog.Level {
	switch level {
	case ports.LevelDebug:
		return zerolog.DebugLevel
	case ports.LevelWarn:
		return zerolog.WarnLevel
	case ports.LevelError:
		return zerolog.ErrorLevel
	case ports.LevelQuiet:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
