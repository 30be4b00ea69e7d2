package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const defaultEventBuffer = 100

// Service owns the note collection of a session.
//
// Every mutation is staged on a copy of the collection, persisted through the
// Store and only then made visible. A failed persist leaves the collection
// exactly as it was.
type Service struct {
	store           Store
	notes           []Note
	now             func() time.Time
	newID           func() string
	logger          *slog.Logger
	eventBufferSize int
	mu              sync.RWMutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used to stamp new notes.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides how note IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEventBuffer sets the size of the buffer between a watched store and
// the consumer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(s *Service) {
		s.eventBufferSize = size
	}
}

// NewService creates a Service with an empty collection.
// Call Reload to populate it from the store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:           store,
		now:             time.Now,
		newID:           uuid.NewString,
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.eventBufferSize <= 0 {
		s.eventBufferSize = defaultEventBuffer
	}
	return s
}

// Reload replaces the in-memory collection with the stored one.
// It is meant for session start and for read-only viewers; it discards
// nothing durable because every mutation was already persisted.
func (s *Service) Reload(ctx context.Context) error {
	notes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.debug("collection loaded", "count", len(notes))
	return nil
}

// Create prepends a new note and persists the collection.
func (s *Service) Create(ctx context.Context, title, content string) (Note, error) {
	if content == "" {
		return Note{}, ErrEmptyContent
	}
	if err := validateTitle(title); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Note{
		ID:      s.newID(),
		Title:   title,
		Content: content,
		Date:    s.now().Round(0),
	}

	next := make([]Note, 0, len(s.notes)+1)
	next = append(next, n)
	next = append(next, s.notes...)

	if err := s.commit(ctx, next, "create "+n.ID); err != nil {
		return Note{}, err
	}
	s.debug("note created", "id", n.ID)
	return n, nil
}

// Update replaces the title and content of the note with the given ID.
// ID and Date are preserved.
func (s *Service) Update(ctx context.Context, id, title, content string) (Note, error) {
	if content == "" {
		return Note{}, ErrEmptyContent
	}
	if err := validateTitle(title); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := slices.Clone(s.notes)
	next[idx].Title = title
	next[idx].Content = content

	if err := s.commit(ctx, next, "update "+id); err != nil {
		return Note{}, err
	}
	s.debug("note updated", "id", id)
	return next[idx], nil
}

// Delete removes the note with the given ID.
// Deleting an unknown ID is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.debug("delete of unknown note ignored", "id", id)
		return nil
	}

	next := slices.Delete(slices.Clone(s.notes), idx, idx+1)
	if err := s.commit(ctx, next, "delete "+id); err != nil {
		return err
	}
	s.debug("note deleted", "id", id)
	return nil
}

// Get retrieves a note by ID.
func (s *Service) Get(ctx context.Context, id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.notes[idx], nil
}

// List returns the whole collection, newest first.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	return s.Query(ctx, "")
}

// Query returns, in collection order, the notes whose title or content
// contains term, ignoring case. An empty term matches every note.
func (s *Service) Query(ctx context.Context, term string) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if term == "" {
		return slices.Clone(s.notes), nil
	}

	m := NewMatcher(term)
	result := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if m.Match(n) {
			result = append(result, n)
		}
	}
	return result, nil
}

// Watch observes external changes of the underlying store if supported.
// Events are buffered so a slow consumer does not stall the store.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}

	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, s.eventBufferSize)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close releases the store when it holds resources (files, connections).
func (s *Service) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// commit persists next and, only on success, makes it the current collection.
// reason is attached to ctx unless the caller already set one.
// Callers must hold s.mu.
func (s *Service) commit(ctx context.Context, next []Note, reason string) error {
	if _, ok := ctx.Value(ChangeReasonKey).(string); !ok {
		ctx = context.WithValue(ctx, ChangeReasonKey, reason)
	}
	if err := s.store.Persist(ctx, next); err != nil {
		if s.logger != nil {
			s.logger.Error("persist failed, collection unchanged", "error", err)
		}
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.notes = next
	return nil
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrTitleTooLong, n, MaxTitleLength)
	}
	return nil
}
