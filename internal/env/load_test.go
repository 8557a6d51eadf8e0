package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nEXHIBITION_TEST_A=\"quoted value\"\nEXHIBITION_TEST_B=kept\n"), 0o644))
	t.Setenv("EXHIBITION_TEST_B", "from env")
	t.Setenv("EXHIBITION_TEST_A", "")
	require.NoError(t, os.Unsetenv("EXHIBITION_TEST_A"))

	require.NoError(t, Load(path))
	assert.Equal(t, "quoted value", os.Getenv("EXHIBITION_TEST_A"))
	assert.Equal(t, "from env", os.Getenv("EXHIBITION_TEST_B"))
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}
