// Package capture turns speech transcripts into note drafts.
//
// A Transcriber delivers the running transcript of a dictation session. A
// Recorder owns one session at a time and copies every transcript update into
// a Draft; nothing reaches the note collection until the caller saves the
// draft through core.Service.
package capture

import (
	"context"
	"errors"
)

// DefaultLocale is the language requested from transcribers unless
// configured otherwise.
const DefaultLocale = "pt-BR"

// ErrAlreadyRecording is returned when Start is called on a busy Recorder.
var ErrAlreadyRecording = errors.New("recording already in progress")

// Options configures a transcription session.
type Options struct {
	// Locale is a BCP 47 language tag.
	Locale string
	// Continuous keeps the session open across pauses. When false the
	// session ends after the first recognized phrase.
	Continuous bool
}

// DefaultOptions returns continuous recognition in DefaultLocale.
func DefaultOptions() Options {
	return Options{Locale: DefaultLocale, Continuous: true}
}

// Transcriber is a speech-to-text capability.
//
// Start begins a session. Every value sent on the returned channel is the
// full transcript so far, not a delta. The channel is closed when the
// session ends, either because the source is exhausted or ctx is cancelled.
type Transcriber interface {
	Start(ctx context.Context, opts Options) (<-chan string, error)
}
