package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/capture"
	"github.com/aretw0/jotter/pkg/shortcut"
)

func runComposer(t *testing.T, input string, draft *capture.Draft) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := newComposer(strings.NewReader(input), &out, draft, shortcut.MustParse("ctrl+k"))
	err := c.run()
	// Bindings never outlive the editing surface.
	assert.False(t, c.observer.Bound(c.save))
	assert.False(t, c.observer.Bound(c.abort))
	return out.String(), err
}

func TestComposer_SaveWithShortcut(t *testing.T) {
	draft := capture.NewDraft("Groceries", "")
	out, err := runComposer(t, "milk\rEGGS\x7f\x7fgs\x0bignored", draft)

	require.NoError(t, err)
	assert.Equal(t, "milk\nEGgs", draft.Content())
	assert.Equal(t, "Groceries", draft.Title())
	assert.Contains(t, out, "ctrl+k saves")
}

func TestComposer_EmptySaveIsIgnored(t *testing.T) {
	draft := capture.NewDraft("", "")
	_, err := runComposer(t, "\x0bhi\x0b", draft)

	require.NoError(t, err)
	assert.Equal(t, "hi", draft.Content())
}

func TestComposer_Abort(t *testing.T) {
	draft := capture.NewDraft("", "")
	_, err := runComposer(t, "half a thought\x03more", draft)

	assert.ErrorIs(t, err, errAborted)
	assert.Equal(t, "half a thought", draft.Content())
}

func TestComposer_InputEndsBeforeSave(t *testing.T) {
	draft := capture.NewDraft("", "")
	_, err := runComposer(t, "never saved", draft)
	assert.ErrorIs(t, err, errAborted)
}

func TestComposer_MultibyteInput(t *testing.T) {
	draft := capture.NewDraft("", "")
	_, err := runComposer(t, "ligar para mãe\x0b", draft)

	require.NoError(t, err)
	assert.Equal(t, "ligar para mãe", draft.Content())
}
