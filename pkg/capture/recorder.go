package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jotter/pkg/core"
)

// Recorder runs at most one transcription session and mirrors its transcript
// into a Draft. Each composer owns its own Recorder.
type Recorder struct {
	transcriber Transcriber
	opts        Options
	logger      *slog.Logger
	onUpdate    func(string)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithOptions overrides DefaultOptions.
func WithOptions(opts Options) RecorderOption {
	return func(r *Recorder) {
		r.opts = opts
	}
}

// WithLogger sets the logger used for session diagnostics.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithUpdateHook registers fn to be called after each transcript update is
// written to the draft.
func WithUpdateHook(fn func(transcript string)) RecorderOption {
	return func(r *Recorder) {
		r.onUpdate = fn
	}
}

// NewRecorder creates a Recorder. t may be nil when the platform offers no
// transcription; Start then reports core.ErrUnsupportedCapability.
func NewRecorder(t Transcriber, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		transcriber: t,
		opts:        DefaultOptions(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins a session that writes every transcript update into d.
// The session ends when the transcriber finishes, Stop is called or ctx is
// cancelled.
func (r *Recorder) Start(ctx context.Context, d *Draft) error {
	if r.transcriber == nil {
		return fmt.Errorf("speech transcription: %w", core.ErrUnsupportedCapability)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		return ErrAlreadyRecording
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	updates, err := r.transcriber.Start(sessionCtx, r.opts)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to start transcription: %w", err)
	}

	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	if r.logger != nil {
		r.logger.Debug("recording started", "locale", r.opts.Locale, "continuous", r.opts.Continuous)
	}

	lifecycle.Go(sessionCtx, func(ctx context.Context) error {
		defer r.finish(done)
		for {
			select {
			case <-ctx.Done():
				return nil
			case text, ok := <-updates:
				if !ok {
					return nil
				}
				d.SetContent(text)
				if r.onUpdate != nil {
					r.onUpdate(text)
				}
			}
		}
	})
	return nil
}

// finish clears the session once the pump exits.
func (r *Recorder) finish(done chan struct{}) {
	r.mu.Lock()
	if r.done == done {
		r.cancel()
		r.cancel = nil
		r.done = nil
	}
	r.mu.Unlock()
	close(done)

	if r.logger != nil {
		r.logger.Debug("recording stopped")
	}
}

// Stop halts transcript delivery and waits for the session to end.
// Stopping an idle Recorder is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if done == nil {
		return
	}
	cancel()
	<-done
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done != nil
}

// Done returns a channel closed when the current session ends. It is nil
// when no session is active.
func (r *Recorder) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}
