package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd sit --node Bench")
	require.True(t, ok)
	assert.Equal(t, []string{"sit", "--node", "Bench"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("hello")
	assert.False(t, ok)
	_, ok = Parse("CMD sit")
	assert.False(t, ok)
}

func TestExecuteParsesFlags(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("look")
	yaw := fs.Float32("yaw", 0, "yaw in degrees")
	pitch := fs.Float32("pitch", 0, "pitch in degrees")
	var rest []string
	r.Register("look", "set the view direction", fs, func(args []string) error {
		rest = args
		return nil
	})

	require.NoError(t, r.Execute([]string{"look", "--yaw", "90", "--pitch=-10", "extra"}))
	assert.InDelta(t, 90, *yaw, 1e-6)
	assert.InDelta(t, -10, *pitch, 1e-6)
	assert.Equal(t, []string{"extra"}, rest)
}

func TestExecuteResetsOmittedFlags(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("look")
	yaw := fs.Float32("yaw", 0, "yaw in degrees")
	pitch := fs.Float32("pitch", 0, "pitch in degrees")
	node := fs.String("node", "", "node name")
	grid := fs.Bool("grid", true, "show grid")
	r.Register("look", "set the view direction", fs, func([]string) error { return nil })

	require.NoError(t, r.Execute([]string{"look", "--yaw", "90", "--node", "Bench", "--grid=false"}))
	assert.InDelta(t, 90, *yaw, 1e-6)
	assert.Equal(t, "Bench", *node)
	assert.False(t, *grid)

	require.NoError(t, r.Execute([]string{"look", "--pitch", "10"}))
	assert.InDelta(t, 0, *yaw, 1e-6)
	assert.InDelta(t, 10, *pitch, 1e-6)
	assert.Equal(t, "", *node)
	assert.True(t, *grid)
	assert.False(t, fs.Changed("yaw"))
	assert.True(t, fs.Changed("pitch"))
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func([]string) error { return boom })

	assert.ErrorContains(t, r.Execute(nil), "missing subcommand")
	assert.ErrorContains(t, r.Execute([]string{"nope"}), "unknown command: nope")
	assert.ErrorIs(t, r.Execute([]string{"fail"}), boom)
	assert.ErrorContains(t, r.Execute([]string{"fail", "--bogus"}), "fail:")
}

func TestHelpIsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("stand", "stand up", nil, func([]string) error { return nil })
	r.Register("look", "set view", nil, func([]string) error { return nil })
	assert.Equal(t, []string{"look", "stand"}, r.Names())
	assert.Equal(t, []string{"look: set view", "stand: stand up"}, r.Help())
}
