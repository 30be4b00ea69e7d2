// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jotter/pkg/core"
)

type changeSource struct {
	events <-chan core.Event
	keep   func(core.Event) bool
	out    chan lifecycle.Event
}

// SourceOption customizes a Source.
type SourceOption func(*changeSource)

// WithFilter drops events for which keep returns false.
func WithFilter(keep func(core.Event) bool) SourceOption {
	return func(s *changeSource) {
		s.keep = keep
	}
}

// NewSource creates a lifecycle.Source that re-emits slot change events.
// The returned source closes its channel when events closes or the context
// passed to Start is cancelled.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.keep != nil && !s.keep(e) {
					continue
				}
				// core.Event satisfies lifecycle.Event through String.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
