package zerolog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haguru/bookstore/internal/interfaces"
	"github.com/rs/zerolog"
)

// Logger implements interfaces.Logger using zerolog.
type Logger struct {
	zlog zerolog.Logger
}

// NewZerologLogger initializes zerolog with standard settings.
// Command output owns stdout, so callers normally pass os.Stderr here.
func NewZerologLogger(serviceName string, out io.Writer) interfaces.Logger {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	z := zerolog.New(output).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return &Logger{zlog: z}
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	withKeyvals(l.zlog.Info(), keyvals).Msg(msg)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	withKeyvals(l.zlog.Warn(), keyvals).Msg(msg)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	withKeyvals(l.zlog.Error(), keyvals).Msg(msg)
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	withKeyvals(l.zlog.Debug(), keyvals).Msg(msg)
}

// withKeyvals attaches alternating key/value pairs, skipping non-string keys.
func withKeyvals(event *zerolog.Event, keyvals []interface{}) *zerolog.Event {
	for i := 0; i < len(keyvals)-1; i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		if err, ok := keyvals[i+1].(error); ok {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, keyvals[i+1])
	}
	return event
}

// SetLevel sets the global log level for zerolog.
func (l *Logger) SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// WithContext creates a new logger with additional context.
func (l *Logger) WithContext(ctx map[string]interface{}) interfaces.Logger {
	newLogger := l.zlog.With()
	for key, value := range ctx {
		newLogger = newLogger.Interface(key, value)
	}
	return &Logger{zlog: newLogger.Logger()}
}
