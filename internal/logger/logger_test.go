package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFileTailAndConsole(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer
	l, err := New(dir, "debug", &console)
	require.NoError(t, err)

	l.Debug().Str("node", "Art_01").Msg("gaze target")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "gaze target")
	assert.Contains(t, string(data), "node=Art_01")
	assert.Contains(t, console.String(), "gaze target")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "logging set up")
	assert.Contains(t, lines[1], "gaze target")
}

func TestLevelFilters(t *testing.T) {
	l, err := New(t.TempDir(), "warn", nil)
	require.NoError(t, err)
	defer l.Close()

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}

func TestTailKeepsMostRecent(t *testing.T) {
	l, err := New(t.TempDir(), "info", nil)
	require.NoError(t, err)
	defer l.Close()

	for i := range tailSize + 50 {
		l.Info().Msg("line " + strconv.Itoa(i))
	}
	lines := l.Lines()
	require.Len(t, lines, tailSize)
	assert.Contains(t, lines[len(lines)-1], "line "+strconv.Itoa(tailSize+49))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel(" TRACE "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("Error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}
