package core

import "context"

// Store mirrors a note collection to durable storage.
// Implementations always replace the whole collection; there are no partial
// updates.
type Store interface {
	// Persist overwrites the stored collection with notes, in order.
	Persist(ctx context.Context, notes []Note) error

	// Load returns the stored collection, or an empty one if nothing was
	// stored yet. Malformed data yields an error wrapping ErrCorruptState.
	Load(ctx context.Context) ([]Note, error)
}

// Watchable is implemented by stores that can report changes made by other
// processes.
type Watchable interface {
	// Watch emits an Event for every change of a slot matching pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

type contextKey string

// ChangeReasonKey is the context key carrying a short description of the
// mutation being persisted (used as commit message by versioned stores).
const ChangeReasonKey contextKey = "change_reason"

// ChangeReason extracts the change reason from ctx, or returns fallback.
func ChangeReason(ctx context.Context, fallback string) string {
	if val, ok := ctx.Value(ChangeReasonKey).(string); ok && val != "" {
		return val
	}
	return fallback
}
