package capture_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/capture"
	"github.com/aretw0/jotter/pkg/core"
)

// scriptedTranscriber replays a fixed list of transcripts and then, unless
// hold is set, ends the session.
type scriptedTranscriber struct {
	transcripts []string
	hold        bool
	got         capture.Options
}

func (s *scriptedTranscriber) Start(ctx context.Context, opts capture.Options) (<-chan string, error) {
	s.got = opts
	out := make(chan string)
	go func() {
		defer close(out)
		for _, text := range s.transcripts {
			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
		}
		if s.hold {
			<-ctx.Done()
		}
	}()
	return out, nil
}

type brokenTranscriber struct{}

func (brokenTranscriber) Start(context.Context, capture.Options) (<-chan string, error) {
	return nil, errors.New("microphone busy")
}

func waitDone(t *testing.T, r *capture.Recorder) {
	t.Helper()
	done := r.Done()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recording did not finish")
	}
}

func TestRecorder_WritesTranscriptIntoDraft(t *testing.T) {
	tr := &scriptedTranscriber{transcripts: []string{"comprar", "comprar leite"}}
	var updates []string
	r := capture.NewRecorder(tr, capture.WithUpdateHook(func(s string) {
		updates = append(updates, s)
	}))

	d := capture.NewDraft("Mercado", "")
	require.NoError(t, r.Start(context.Background(), d))
	waitDone(t, r)

	assert.False(t, r.Recording())
	assert.Equal(t, "comprar leite", d.Content())
	assert.Equal(t, "Mercado", d.Title())
	assert.Equal(t, []string{"comprar", "comprar leite"}, updates)
	assert.Equal(t, capture.DefaultOptions(), tr.got)
}

func TestRecorder_Unsupported(t *testing.T) {
	r := capture.NewRecorder(nil)
	err := r.Start(context.Background(), capture.NewDraft("", ""))
	assert.ErrorIs(t, err, core.ErrUnsupportedCapability)
	assert.False(t, r.Recording())
}

func TestRecorder_StartFailure(t *testing.T) {
	r := capture.NewRecorder(brokenTranscriber{})
	err := r.Start(context.Background(), capture.NewDraft("", ""))
	assert.ErrorContains(t, err, "microphone busy")
	assert.False(t, r.Recording())
}

func TestRecorder_StopAndRestart(t *testing.T) {
	tr := &scriptedTranscriber{transcripts: []string{"olá"}, hold: true}
	r := capture.NewRecorder(tr, capture.WithOptions(capture.Options{Locale: "en-US"}))
	d := capture.NewDraft("", "")

	require.NoError(t, r.Start(context.Background(), d))
	assert.True(t, r.Recording())
	assert.ErrorIs(t, r.Start(context.Background(), d), capture.ErrAlreadyRecording)

	r.Stop()
	assert.False(t, r.Recording())
	assert.Equal(t, "en-US", tr.got.Locale)

	// Stopping twice is harmless.
	r.Stop()

	require.NoError(t, r.Start(context.Background(), d))
	r.Stop()
}

func TestLineTranscriber(t *testing.T) {
	input := "comprar leite\n\n  e ovos  \nligar para mãe\n"

	t.Run("Continuous", func(t *testing.T) {
		tr := capture.NewLineTranscriber(strings.NewReader(input))
		updates, err := tr.Start(context.Background(), capture.DefaultOptions())
		require.NoError(t, err)

		var got []string
		for u := range updates {
			got = append(got, u)
		}
		assert.Equal(t, []string{
			"comprar leite",
			"comprar leite e ovos",
			"comprar leite e ovos ligar para mãe",
		}, got)
	})

	t.Run("Single Phrase", func(t *testing.T) {
		tr := capture.NewLineTranscriber(strings.NewReader(input))
		updates, err := tr.Start(context.Background(), capture.Options{Locale: capture.DefaultLocale})
		require.NoError(t, err)

		var got []string
		for u := range updates {
			got = append(got, u)
		}
		assert.Equal(t, []string{"comprar leite"}, got)
	})
}

func TestDraft(t *testing.T) {
	d := capture.NewDraft("t", "")
	assert.True(t, d.Empty())

	d.SetContent("body")
	title, content := d.Snapshot()
	assert.Equal(t, "t", title)
	assert.Equal(t, "body", content)

	d.Reset()
	assert.True(t, d.Empty())
	assert.Empty(t, d.Title())
}
