package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/antmon/internal/logger"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDirSize_SumsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), 100)
	writeFile(t, filepath.Join(dir, "sub", "b.bin"), 250)
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.bin"), 50)

	size, err := DirSize(dir, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, uint64(400), size)
}

func TestDirSize_EmptyDir(t *testing.T) {
	size, err := DirSize(t.TempDir(), logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), size)
}

func TestDirSize_PlainFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "only.bin")
	writeFile(t, file, 42)

	size, err := DirSize(file, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), size)
}

func TestDirSize_MissingPath(t *testing.T) {
	_, err := DirSize(filepath.Join(t.TempDir(), "gone"), logger.Noop())
	assert.Error(t, err)
}

func TestDirSize_SymlinksIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "real.bin"), 10)

	// Symlink to the file and a dangling one; neither should count.
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.bin"), filepath.Join(dir, "link.bin")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nope"), filepath.Join(dir, "dangling")))

	size, err := DirSize(dir, logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, uint64(10), size)
}

func TestDirSize_UnreadableSubdirSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok", "a.bin"), 100)
	writeFile(t, filepath.Join(dir, "locked", "b.bin"), 999)

	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	log := logger.NewBufferLogger()
	size, err := DirSize(dir, log)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), size)
	assert.True(t, log.HasLevel("warn"))
}
