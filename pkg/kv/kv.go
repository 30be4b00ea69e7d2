// Package kv defines the key-value slot contract shared by every storage
// backend.
package kv

import (
	"context"
	"errors"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is a persistent key-value store.
// Set must replace the value of a key atomically: readers observe either the
// old or the new value, never a mix.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys matching pattern (see Match), sorted.
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

// Initializer is implemented by stores that need setup before first use
// (directories, schema).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Match reports whether key matches the glob pattern.
// Patterns follow doublestar syntax ("notes", "work/*", "**"); an empty
// pattern matches everything. Malformed patterns match nothing.
func Match(pattern, key string) bool {
	if pattern == "" {
		return true
	}
	ok, err := doublestar.Match(pattern, key)
	return err == nil && ok
}

// ValidatePattern reports a malformed glob pattern.
func ValidatePattern(pattern string) error {
	if pattern == "" || doublestar.ValidatePattern(pattern) {
		return nil
	}
	return doublestar.ErrBadPattern
}
