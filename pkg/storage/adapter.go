// Package storage mirrors a note collection into a single slot of a
// key-value store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/kv"
)

// DefaultKey is the slot the browser version of the app used.
const DefaultKey = "notes"

// Adapter implements core.Store on top of a kv.Store slot.
type Adapter struct {
	store    kv.Store
	key      string
	codec    Codec
	readOnly bool
	logger   *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey selects the slot holding the collection.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithCodec selects the serialization format.
func WithCodec(c Codec) Option {
	return func(a *Adapter) {
		if c != nil {
			a.codec = c
		}
	}
}

// WithReadOnly makes Persist fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(a *Adapter) {
		a.readOnly = enabled
	}
}

// WithLogger sets the logger for the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New creates an Adapter over store. Defaults: key "notes", JSON codec.
func New(store kv.Store, opts ...Option) *Adapter {
	a := &Adapter{
		store: store,
		key:   DefaultKey,
		codec: JSONCodec{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the slot holding the collection.
func (a *Adapter) Key() string {
	return a.key
}

// Store returns the backend holding the slot.
func (a *Adapter) Store() kv.Store {
	return a.store
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.store.Close()
}

// Persist serializes notes and replaces the slot.
func (a *Adapter) Persist(ctx context.Context, notes []core.Note) error {
	if a.readOnly {
		return core.ErrReadOnly
	}

	data, err := a.codec.Encode(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	if err := a.store.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", a.key, err)
	}

	if a.logger != nil {
		a.logger.Debug("notes persisted", "key", a.key, "count", len(notes), "bytes", len(data))
	}
	return nil
}

// Load reads the slot. A missing slot is an empty collection.
func (a *Adapter) Load(ctx context.Context) ([]core.Note, error) {
	data, err := a.store.Get(ctx, a.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", a.key, err)
	}

	notes, err := a.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %q: %w", core.ErrCorruptState, a.key, err)
	}
	return notes, nil
}

// Reset removes the slot, so the next Load starts empty.
func (a *Adapter) Reset(ctx context.Context) error {
	if a.readOnly {
		return core.ErrReadOnly
	}
	if err := a.store.Delete(ctx, a.key); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("failed to reset slot %q: %w", a.key, err)
	}
	return nil
}

// Watch forwards change events of the underlying store. An empty pattern
// watches only the adapter's own slot.
func (a *Adapter) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := a.store.(core.Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	if pattern == "" {
		pattern = a.key
	}
	return w.Watch(ctx, pattern)
}

// AdapterState exposes internal state for observability.
type AdapterState struct {
	Key      string `json:"key"`
	Codec    string `json:"codec"`
	ReadOnly bool   `json:"read_only"`
	Backend  any    `json:"backend,omitempty"`
}

// State implements introspection.Introspectable.
func (a *Adapter) State() any {
	s := AdapterState{
		Key:      a.key,
		Codec:    a.codec.Name(),
		ReadOnly: a.readOnly,
	}
	if intro, ok := a.store.(introspection.Introspectable); ok {
		s.Backend = intro.State()
	}
	return s
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string {
	if comp, ok := a.store.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "storage"
}

var (
	_ core.Store                   = (*Adapter)(nil)
	_ core.Watchable               = (*Adapter)(nil)
	_ introspection.Introspectable = (*Adapter)(nil)
	_ introspection.Component      = (*Adapter)(nil)
)
