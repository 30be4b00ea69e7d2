package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/jotter/pkg/capture"
	"github.com/aretw0/jotter/pkg/shortcut"
)

var errAborted = errors.New("composer aborted")

// composer is the raw-terminal editing surface of `jotter add -i`.
// It owns its key bindings: they exist only while run is active.
type composer struct {
	in       io.Reader
	out      io.Writer
	draft    *capture.Draft
	observer *shortcut.Observer
	save     shortcut.Combo
	abort    shortcut.Combo
}

func newComposer(in io.Reader, out io.Writer, draft *capture.Draft, save shortcut.Combo) *composer {
	return &composer{
		in:       in,
		out:      out,
		draft:    draft,
		observer: shortcut.NewObserver(),
		save:     save,
		abort:    shortcut.MustParse("ctrl+c"),
	}
}

// run edits the draft content until the save combo is pressed with
// non-empty content. It returns errAborted on ctrl+c or when input ends
// before saving.
func (c *composer) run() error {
	var done, saved bool

	unregisterSave := c.observer.Register(c.save, func() {
		// Saving an empty draft is ignored; keep composing.
		if c.draft.Empty() {
			return
		}
		done, saved = true, true
	})
	defer unregisterSave()

	unregisterAbort := c.observer.Register(c.abort, func() {
		done = true
	})
	defer unregisterAbort()

	fmt.Fprintf(c.out, "Type your note. %s saves, %s cancels.\r\n", c.save, c.abort)
	if content := c.draft.Content(); content != "" {
		fmt.Fprint(c.out, strings.ReplaceAll(content, "\n", "\r\n"))
	}

	buf := make([]byte, 0, 64)
	chunk := make([]byte, 64)
	for !done {
		n, err := c.in.Read(chunk)
		buf = append(buf, chunk[:n]...)

		for len(buf) > 0 && !done {
			key, size := shortcut.Decode(buf)
			if size == 0 {
				break
			}
			buf = buf[size:]

			if c.observer.Dispatch(key) {
				continue
			}
			c.apply(key)
		}

		if err != nil {
			break
		}
	}

	fmt.Fprint(c.out, "\r\n")
	if !saved {
		return errAborted
	}
	return nil
}

// apply performs the editing action of an unbound key.
func (c *composer) apply(key shortcut.Combo) {
	content := c.draft.Content()

	switch {
	case key == (shortcut.Combo{Key: shortcut.KeyEnter}):
		c.draft.SetContent(content + "\n")
		fmt.Fprint(c.out, "\r\n")
	case key == (shortcut.Combo{Key: shortcut.KeyBackspace}):
		if content == "" {
			return
		}
		r, size := utf8.DecodeLastRuneInString(content)
		c.draft.SetContent(content[:len(content)-size])
		if r != '\n' {
			fmt.Fprint(c.out, "\b \b")
		}
	case key == (shortcut.Combo{Key: shortcut.KeyTab}):
		c.draft.SetContent(content + "\t")
		fmt.Fprint(c.out, "\t")
	case key.Printable():
		c.draft.SetContent(content + string(key.Key))
		fmt.Fprint(c.out, string(key.Key))
	}
}
