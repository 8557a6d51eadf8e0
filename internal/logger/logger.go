package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFileName is the log file created inside the logs directory.
const LogFileName = "exhibition.txt"

// tailSize is how many formatted lines the in-memory tail keeps for the overlay.
const tailSize = 200

// Logger is the process logger. Every event goes to the log file, the optional console, and an
// in-memory tail that the debug overlay reads through Lines.
type Logger struct {
	zerolog.Logger

	file *os.File
	tail *tail
}

// New creates dir if needed and returns a logger at the named level (trace, debug, info, warn,
// error; anything else means info). console may be nil.
func New(dir, level string, console io.Writer) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	t := &tail{max: tailSize}
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true},
		zerolog.ConsoleWriter{Out: t, TimeFormat: "15:04:05", NoColor: true},
	}
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})
	}

	l := &Logger{
		Logger: zerolog.New(zerolog.MultiLevelWriter(writers...)).
			Level(ParseLevel(level)).
			With().Timestamp().Logger(),
		file: f,
		tail: t,
	}
	l.Info().Str("loglevel", l.GetLevel().String()).Msg("logging set up")
	return l, nil
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Lines returns a copy of the most recent formatted lines, oldest first.
func (l *Logger) Lines() []string {
	return l.tail.lines()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	return l.file.Close()
}

type tail struct {
	mu  sync.Mutex
	buf []string
	max int
}

func (t *tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		t.buf = append(t.buf, line)
	}
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tail) lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.buf))
	copy(out, t.buf)
	return out
}
