package capture

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineTranscriber reads recognized phrases, one per line, from an external
// speech-to-text tool and reports the growing transcript.
type LineTranscriber struct {
	r io.Reader
}

// NewLineTranscriber creates a transcriber over r.
func NewLineTranscriber(r io.Reader) *LineTranscriber {
	return &LineTranscriber{r: r}
}

// Start reads phrases until r is exhausted or ctx is cancelled. Blank lines
// are skipped. Without opts.Continuous the session ends after the first
// phrase.
func (t *LineTranscriber) Start(ctx context.Context, opts Options) (<-chan string, error) {
	out := make(chan string)

	go func() {
		defer close(out)

		var transcript strings.Builder
		scanner := bufio.NewScanner(t.r)
		for scanner.Scan() {
			phrase := strings.TrimSpace(scanner.Text())
			if phrase == "" {
				continue
			}
			if transcript.Len() > 0 {
				transcript.WriteByte(' ')
			}
			transcript.WriteString(phrase)

			select {
			case out <- transcript.String():
			case <-ctx.Done():
				return
			}

			if !opts.Continuous {
				return
			}
		}
	}()

	return out, nil
}

var _ Transcriber = (*LineTranscriber)(nil)
