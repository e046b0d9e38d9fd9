package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCommandFileMissing(t *testing.T) {
	_, err := ReadCommandFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileUnavailable)
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_spawn_commands.txt")
	text := "# A\nbot spawn 1 Guard 1 2 3 0\n"

	require.NoError(t, WriteCommandFile(path, text))

	got, err := ReadCommandFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestWriteCommandFileOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.txt")

	require.NoError(t, WriteCommandFile(path, "first\n"))
	require.NoError(t, WriteCommandFile(path, "second\n"))

	got, err := ReadCommandFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", got)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAppendCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")

	require.NoError(t, WriteCommandFile(path, "bot spawn 1 Guard 1 2 3 0\n"))
	require.NoError(t, AppendCommandFile(path, "bot spawn 1 Sniper 4 5 6 90\n"))

	got, err := ReadCommandFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bot spawn 1 Guard 1 2 3 0\nbot spawn 1 Sniper 4 5 6 90\n", got)
}

func TestAppendCommandFileCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	require.NoError(t, AppendCommandFile(path, "spawn 1 Crate 1 2 3 0 0 0\n"))

	got, err := ReadCommandFile(path)
	require.NoError(t, err)
	assert.Equal(t, "spawn 1 Crate 1 2 3 0 0 0\n", got)
}
