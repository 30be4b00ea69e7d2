package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight slot writes. Such files are never keys.
const TempFilePrefix = "jotter-tmp-"

// writeFileAtomic replaces filename with data. Readers observe either the
// previous slot or the new one, never a truncated file.
//
// The parent directory must exist.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp slot: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp slot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err = os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(filename), err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows opening
// directories. Failures are ignored: the data itself is already synced.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
