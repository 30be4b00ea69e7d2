package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leftovers lists in-flight temp files in dir.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), TempFilePrefix) {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestWriteFileAtomic_ReplacesSlot(t *testing.T) {
	dir := t.TempDir()
	slot := filepath.Join(dir, "notes.json")

	require.NoError(t, writeFileAtomic(slot, []byte(`[]`), 0644))
	require.NoError(t, writeFileAtomic(slot, []byte(`[{"id":"a","content":"milk","date":"2024-02-03T12:00:00Z"}]`), 0644))

	got, err := os.ReadFile(slot)
	require.NoError(t, err)
	assert.Contains(t, string(got), "milk")
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteFileAtomic_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	slot := filepath.Join(t.TempDir(), "notes.json")

	require.NoError(t, writeFileAtomic(slot, []byte(`[]`), 0600))

	info, err := os.Stat(slot)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	slot := filepath.Join(dir, "work", "notes.json")

	err := writeFileAtomic(slot, []byte(`[]`), 0644)
	require.Error(t, err)

	_, statErr := os.Stat(slot)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, leftovers(t, dir))
}

func TestWriteFileAtomic_RenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the slot makes the rename fail after the
	// temp file was written.
	slot := filepath.Join(dir, "notes.json")
	require.NoError(t, os.Mkdir(slot, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(slot, "keep"), []byte("x"), 0644))

	require.Error(t, writeFileAtomic(slot, []byte(`[]`), 0644))
	assert.Empty(t, leftovers(t, dir))
}
