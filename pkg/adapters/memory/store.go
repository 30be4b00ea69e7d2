// Package memory provides a process-local kv.Store.
// It backs ephemeral sessions and tests; nothing survives the process.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/jotter/pkg/kv"
)

// Store is an in-memory kv.Store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
	// FailWrites, when set, is returned by Set and Delete. It simulates
	// quota or I/O failures.
	FailWrites error
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data[key] = slices.Clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.data[key]; !ok {
		return kv.ErrNotFound
	}
	delete(s.data, key)
	return nil
}

func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := kv.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.data {
		if kv.Match(pattern, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error { return nil }

// StoreState is the introspection snapshot of a memory store.
type StoreState struct {
	Keys int `json:"keys"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{Keys: len(s.data)}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var _ kv.Store = (*Store)(nil)
