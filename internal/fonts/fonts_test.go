package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Noto.OTF"))
	touch(t, filepath.Join(dir, "readme.txt"))

	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Bold.ttf", "Noto.OTF"}, list)

	list, err = ScanDir(filepath.Join(dir, "missing"))
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"))
	touch(t, filepath.Join(dir, "Noto_Sans", "NotoSans-Italic.ttf"))

	rel, full, err := Find([]string{filepath.Join(dir, "nope"), dir}, "inter")
	require.NoError(t, err)
	assert.Equal(t, "Inter/Inter-Regular.ttf", rel)
	assert.Equal(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"), full)

	rel, _, err = Find([]string{dir}, "Noto Sans.ttf")
	require.NoError(t, err)
	assert.Equal(t, "Noto_Sans/NotoSans-Italic.ttf", rel)

	_, _, err = Find([]string{dir}, "Comic")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, _, err = Find([]string{dir}, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
