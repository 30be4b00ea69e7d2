package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/capture"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/shortcut"
)

const defaultSaveCombo = "ctrl+k"

var (
	addTitle       string
	addContent     string
	addMessage     string
	addDictate     bool
	addInteractive bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long: `Create a note from --content, from piped stdin, from dictation
(--dictate, reading recognized phrases line by line from stdin) or in the
interactive composer (-i).

A note without content is not saved.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		draft := capture.NewDraft(addTitle, addContent)
		stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))

		switch {
		case addDictate:
			if !dictate(ctx, draft, stdinIsTerminal) {
				return
			}
		case addInteractive:
			if !compose(draft) {
				fmt.Fprintln(os.Stderr, "Discarded.")
				return
			}
		case addContent == "" && !stdinIsTerminal:
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			draft.SetContent(strings.TrimRight(string(data), "\r\n"))
		}

		sess := openSession(ctx, cmd)
		defer sess.Close()

		if addMessage != "" {
			ctx = jotter.WithChangeReason(ctx, jotter.FormatChangeReason(jotter.CommitTypeDocs, sess.Adapter.Key(), addMessage, ""))
		}

		title, content := draft.Snapshot()
		note, err := sess.Service.Create(ctx, title, content)
		if errors.Is(err, core.ErrEmptyContent) {
			fmt.Fprintln(os.Stderr, "Nothing to save: the note is empty.")
			return
		}
		if err != nil {
			fatal("Failed to create note", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note %s created.\n", shortID(note.ID))
	},
}

// dictate fills the draft from transcript phrases piped on stdin until the
// input ends or the user interrupts. It reports whether there is something
// to save.
func dictate(ctx context.Context, draft *capture.Draft, stdinIsTerminal bool) bool {
	var transcriber capture.Transcriber
	if !stdinIsTerminal {
		transcriber = capture.NewLineTranscriber(os.Stdin)
	}

	locale := cfg.Locale
	if locale == "" {
		locale = capture.DefaultLocale
	}

	recorder := capture.NewRecorder(transcriber,
		capture.WithOptions(capture.Options{Locale: locale, Continuous: true}),
		capture.WithLogger(slog.Default()),
		capture.WithUpdateHook(func(transcript string) {
			fmt.Fprintf(os.Stderr, "\r\033[K● %s", preview(transcript))
		}),
	)

	err := recorder.Start(ctx, draft)
	if errors.Is(err, core.ErrUnsupportedCapability) {
		fmt.Fprintln(os.Stderr, "Dictation needs a speech-to-text tool piped into stdin, e.g. `whisper-stream | jotter add --dictate`.")
		return false
	}
	if err != nil {
		fatal("Failed to start dictation", err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if done := recorder.Done(); done != nil {
		select {
		case <-done:
		case <-sigCtx.Done():
			recorder.Stop()
		}
	}
	fmt.Fprintln(os.Stderr)
	return true
}

// compose runs the interactive composer on the raw terminal. It reports
// whether the draft was saved.
func compose(draft *capture.Draft) bool {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fatal("Interactive mode unavailable", errors.New("stdin is not a terminal"))
	}

	comboText := cfg.SaveCombo
	if comboText == "" {
		comboText = defaultSaveCombo
	}
	save, err := shortcut.ParseCombo(comboText)
	if err != nil {
		fatal("Invalid save_combo", err)
	}

	if draft.Title() == "" {
		fmt.Fprint(os.Stdout, "Title (optional): ")
		// The terminal is still in line mode, so this read returns one line.
		title, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		draft.SetTitle(strings.TrimSpace(title))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fatal("Failed to enter raw mode", err)
	}
	defer term.Restore(fd, oldState)

	return newComposer(os.Stdin, os.Stdout, draft, save).run() == nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", fmt.Sprintf("Note title (max %d characters)", core.MaxTitleLength))
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note content")
	addCmd.Flags().StringVarP(&addMessage, "message", "m", "", "Change reason recorded by versioned stores")
	addCmd.Flags().BoolVar(&addDictate, "dictate", false, "Fill the content from transcript phrases piped on stdin")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Compose in the terminal; the save shortcut stores the note")
	addCmd.MarkFlagsMutuallyExclusive("content", "dictate", "interactive")
}
