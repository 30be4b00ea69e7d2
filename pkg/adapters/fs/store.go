package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
	"github.com/aretw0/jotter/pkg/kv"
)

// DefaultExtension is appended to keys to form slot file names.
const DefaultExtension = ".json"

// Store implements kv.Store with one file per key under a directory.
// When versioning is enabled every write is committed to a git repository
// rooted at the same directory.
type Store struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	Extension    string // Slot file extension, e.g. ".json" or ".yaml".
	Versioning   bool
	AutoInit     bool
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error)   // Receives watcher runtime errors.
	Debounce     time.Duration // Watch event coalescing window. Zero means 50ms.
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if !strings.HasPrefix(config.Extension, ".") {
		config.Extension = "." + config.Extension
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}

	client := git.NewClient(config.Path, git.DefaultLockName, config.Logger)
	client.AuthorName = "jotter"
	client.AuthorEmail = "jotter@localhost"

	return &Store{
		Path:   config.Path,
		git:    client,
		config: config,
	}
}

// Initialize prepares the directory and, with versioning, the git repository.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
	} else {
		if err := os.MkdirAll(s.Path, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	if !s.config.Versioning || s.config.ReadOnly {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !s.git.IsRepo() {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.Path)
		}
		if err := s.git.Init(ctx); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := s.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}

	if mod && wasNewRepo {
		if err := s.git.Add(ctx, ".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := s.git.Commit(ctx, "chore: configure jotter ignores"); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}

	return nil
}

// ensureIgnore keeps the lock and temp files out of version control.
func (s *Store) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	wanted := []string{s.git.LockName(), TempFilePrefix + "*"}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, w := range wanted {
		if !present[w] {
			missing = append(missing, w)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(strings.Join(missing, "\n") + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// filename maps a key to its slot file, relative to the store root.
func (s *Store) filename(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid key %q: must be a relative path inside the store", key)
	}
	for _, part := range strings.Split(key, "/") {
		if strings.HasPrefix(part, ".") {
			return "", fmt.Errorf("invalid key %q: hidden path elements are reserved", key)
		}
	}
	return rel + s.config.Extension, nil
}

// Get reads the slot file for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	name, err := s.filename(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.Path, name))
	if os.IsNotExist(err) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Set replaces the slot file for key atomically and, with versioning,
// commits it.
//
// Workflow:
//  1. Validate the key and map it to a file name.
//  2. Create parent directories.
//  3. (If versioning) take the git lock and remember the current slot.
//  4. Write to a temp file and rename it over the slot.
//  5. (If versioning) 'git add' and 'git commit' with the context's change
//     reason. On failure the remembered slot is put back and unstaged.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	name, err := s.filename(key)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.Path, name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if !s.config.Versioning {
		if err := writeFileAtomic(fullPath, value, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		s.recordWrite()
		return nil
	}

	unlock, err := s.git.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	prev, err := readSnapshot(fullPath)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(fullPath, value, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	gitName := filepath.ToSlash(name)
	if err := s.git.Add(ctx, gitName); err != nil {
		return errors.Join(fmt.Errorf("failed to git add: %w", err), s.rollback(ctx, fullPath, gitName, prev))
	}
	if err := s.git.Commit(ctx, core.ChangeReason(ctx, "update "+key)); err != nil {
		return errors.Join(fmt.Errorf("failed to git commit: %w", err), s.rollback(ctx, fullPath, gitName, prev))
	}

	s.recordWrite()
	return nil
}

// Delete removes the slot file for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	name, err := s.filename(key)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.Path, name)

	if !s.config.Versioning {
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			return kv.ErrNotFound
		}
		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		s.recordWrite()
		return nil
	}

	unlock, err := s.git.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	prev, err := readSnapshot(fullPath)
	if err != nil {
		return err
	}
	if !prev.exists {
		return kv.ErrNotFound
	}

	gitName := filepath.ToSlash(name)
	if err := s.git.Rm(ctx, gitName); err != nil {
		// Never committed: plain removal is enough.
		if rmErr := os.Remove(fullPath); rmErr != nil {
			return fmt.Errorf("failed to git rm: %w", err)
		}
	}
	if err := s.git.Commit(ctx, core.ChangeReason(ctx, "delete "+key)); err != nil {
		return errors.Join(fmt.Errorf("failed to git commit: %w", err), s.rollback(ctx, fullPath, gitName, prev))
	}

	s.recordWrite()
	return nil
}

// slotSnapshot is a slot file as it was before a versioned change.
type slotSnapshot struct {
	data   []byte
	exists bool
}

func readSnapshot(path string) (slotSnapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return slotSnapshot{}, nil
	}
	if err != nil {
		return slotSnapshot{}, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return slotSnapshot{data: data, exists: true}, nil
}

// rollback restores a slot file and its index entry after a failed commit.
// The caller holds the git lock.
func (s *Store) rollback(ctx context.Context, fullPath, gitName string, prev slotSnapshot) error {
	ctx = context.WithoutCancel(ctx)

	var restoreErr error
	if prev.exists {
		restoreErr = writeFileAtomic(fullPath, prev.data, 0644)
	} else if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		restoreErr = err
	}

	err := errors.Join(restoreErr, s.git.Unstage(ctx, gitName))
	if err != nil {
		if s.config.Logger != nil {
			s.config.Logger.Error("failed to roll back slot", "file", gitName, "error", err)
		}
		return fmt.Errorf("failed to roll back %s: %w", gitName, err)
	}
	return nil
}

// Keys walks the store directory and returns the keys matching pattern.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := kv.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	var keys []string
	err := filepath.WalkDir(s.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != s.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		key, ok := s.resolveKey(path)
		if ok && kv.Match(pattern, key) {
			keys = append(keys, key)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(keys)
	return keys, nil
}

// resolveKey maps an absolute slot file path back to its key.
// It returns false for files that are not slots (temp files, lock, other
// extensions, hidden paths).
func (s *Store) resolveKey(path string) (string, bool) {
	rel, err := filepath.Rel(s.Path, path)
	if err != nil || !filepath.IsLocal(rel) {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	base := filepath.Base(rel)
	if strings.HasPrefix(base, TempFilePrefix) || base == s.git.LockName() {
		return "", false
	}
	if filepath.Ext(rel) != s.config.Extension {
		return "", false
	}
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return "", false
		}
	}
	return strings.TrimSuffix(rel, s.config.Extension), true
}

// History returns the commits that touched key, newest first.
func (s *Store) History(ctx context.Context, key string, limit int) ([]git.Revision, error) {
	if !s.config.Versioning {
		return nil, errors.New("history requires versioning")
	}
	name, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	return s.git.Log(ctx, filepath.ToSlash(name), limit)
}

// Close implements kv.Store. Watchers stop with their own context.
func (s *Store) Close() error {
	return nil
}

func (s *Store) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWrite = &now
	s.writes++
}

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.Initializer = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
)
