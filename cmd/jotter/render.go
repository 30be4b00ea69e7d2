package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/aretw0/jotter/pkg/capture"
	"github.com/aretw0/jotter/pkg/core"
)

const previewLength = 72

var (
	titleStyle = color.New(color.Bold)
	idStyle    = color.New(color.FgYellow)
	dateStyle  = color.New(color.Faint)
	matchStyle = color.New(color.FgGreen, color.Bold)
)

// ptBRMagnitudes mirrors humanize's default table with Portuguese wording.
var ptBRMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "agora", DivBy: time.Second},
	{D: 2 * time.Second, Format: "%s 1 segundo", DivBy: 1},
	{D: time.Minute, Format: "%s %d segundos", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minuto", DivBy: 1},
	{D: time.Hour, Format: "%s %d minutos", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s 1 hora", DivBy: 1},
	{D: humanize.Day, Format: "%s %d horas", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 dia", DivBy: 1},
	{D: humanize.Week, Format: "%s %d dias", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "%s 1 semana", DivBy: 1},
	{D: humanize.Month, Format: "%s %d semanas", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "%s 1 mês", DivBy: 1},
	{D: humanize.Year, Format: "%s %d meses", DivBy: humanize.Month},
	{D: 18 * humanize.Month, Format: "%s 1 ano", DivBy: 1},
	{D: 2 * humanize.Year, Format: "%s 2 anos", DivBy: 1},
	{D: humanize.LongTime, Format: "%s %d anos", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%s muito tempo", DivBy: 1},
}

// relativeDate formats then against now in the configured locale, the one
// dictation uses. Portuguese locales read "há 3 minutos"; others fall back
// to humanize's English.
func relativeDate(then, now time.Time) string {
	locale := cfg.Locale
	if locale == "" {
		locale = capture.DefaultLocale
	}
	if strings.HasPrefix(strings.ToLower(locale), "pt") {
		return humanize.CustomRelTime(then, now, "há", "em", ptBRMagnitudes)
	}
	return humanize.RelTime(then, now, "ago", "from now")
}

// noteView is the JSON shape printed by --json.
type noteView struct {
	ID      string    `json:"id"`
	Title   string    `json:"title,omitempty"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

func toView(n core.Note) noteView {
	return noteView{ID: n.ID, Title: n.Title, Content: n.Content, Date: n.Date}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// shortID is the prefix shown in listings; any unique prefix is accepted back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// preview flattens content to one line of at most previewLength runes.
func preview(content string) string {
	line := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(line) <= previewLength {
		return line
	}
	runes := []rune(line)
	return string(runes[:previewLength-1]) + "…"
}

// highlight marks case-insensitive occurrences of term in s.
func highlight(s, term string) string {
	if term == "" {
		return s
	}
	lower := strings.ToLower(s)
	needle := strings.ToLower(term)
	// Lowercasing can change byte lengths outside ASCII; fall back to plain text.
	if len(lower) != len(s) {
		return s
	}

	var b strings.Builder
	for {
		i := strings.Index(lower, needle)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(matchStyle.Sprint(s[i : i+len(needle)]))
		s, lower = s[i+len(needle):], lower[i+len(needle):]
	}
}

// renderList prints one card per note: id, title and age, then a preview.
func renderList(w io.Writer, notes []core.Note, term string, now time.Time) {
	if len(notes) == 0 {
		if term != "" {
			fmt.Fprintf(w, "No notes match %q.\n", term)
		} else {
			fmt.Fprintln(w, "No notes yet. Add one with: jotter add")
		}
		return
	}

	for i, n := range notes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := idStyle.Sprint(shortID(n.ID))
		if n.Title != "" {
			header += " " + titleStyle.Sprint(highlight(n.Title, term))
		}
		header += " " + dateStyle.Sprint(relativeDate(n.Date, now))
		fmt.Fprintln(w, header)
		fmt.Fprintf(w, "  %s\n", highlight(preview(n.Content), term))
	}
}

// renderNote prints a single note in full.
func renderNote(w io.Writer, n core.Note, now time.Time) {
	fmt.Fprintf(w, "%s %s\n", idStyle.Sprint(n.ID), dateStyle.Sprintf("(%s)", relativeDate(n.Date, now)))
	if n.Title != "" {
		fmt.Fprintln(w, titleStyle.Sprint(n.Title))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, n.Content)
}
