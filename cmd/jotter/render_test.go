package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/storage"
)

func init() {
	color.NoColor = true
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "milk, eggs", preview("milk,\n  eggs\n"))

	long := strings.Repeat("ã", previewLength+10)
	got := preview(long)
	assert.Equal(t, previewLength, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestHighlight_NoColorKeepsText(t *testing.T) {
	assert.Equal(t, "call MOM now", highlight("call MOM now", "mom"))
	assert.Equal(t, "plain", highlight("plain", ""))
}

func TestRenderList(t *testing.T) {
	now := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)
	notes := []core.Note{
		{ID: "bbbbbbbb-2222", Content: "call mom", Date: now.Add(-3 * time.Minute)},
		{ID: "aaaaaaaa-1111", Title: "Groceries", Content: "milk, eggs", Date: now.Add(-2 * time.Hour)},
	}

	var out bytes.Buffer
	renderList(&out, notes, "", now)

	want := "bbbbbbbb há 3 minutos\n  call mom\n\naaaaaaaa Groceries há 2 horas\n  milk, eggs\n"
	assert.Equal(t, want, out.String())

	out.Reset()
	renderList(&out, nil, "xyz", now)
	assert.Equal(t, "No notes match \"xyz\".\n", out.String())
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)

	saved := cfg
	t.Cleanup(func() { cfg = saved })

	tests := []struct {
		locale string
		ago    time.Duration
		want   string
	}{
		{"", 0, "agora"},
		{"", time.Minute, "há 1 minuto"},
		{"pt-BR", 3 * 24 * time.Hour, "há 3 dias"},
		{"pt-PT", 45 * 24 * time.Hour, "há 1 mês"},
		{"en-US", 3 * time.Minute, "3 minutes ago"},
	}
	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.want, func(t *testing.T) {
			cfg.Locale = tt.locale
			assert.Equal(t, tt.want, relativeDate(now.Add(-tt.ago), now))
		})
	}

	cfg.Locale = ""
	assert.Equal(t, "em 2 horas", relativeDate(now.Add(2*time.Hour), now))
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"abc-1", "abd-2", "xyz-3"}
	i := 0
	svc := core.NewService(storage.New(memory.New()), core.WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))
	for range ids {
		_, err := svc.Create(ctx, "", "note")
		require.NoError(t, err)
	}

	id, err := resolveID(ctx, svc, "x")
	require.NoError(t, err)
	assert.Equal(t, "xyz-3", id)

	id, err = resolveID(ctx, svc, "abd-2")
	require.NoError(t, err)
	assert.Equal(t, "abd-2", id)

	_, err = resolveID(ctx, svc, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveID(ctx, svc, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

// TestCLI_AddAndList drives the commands end to end on a temporary fs store.
func TestCLI_AddAndList(t *testing.T) {
	store := filepath.Join(t.TempDir(), "notes")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append(args, "--store", store))
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Contains(t, run("add", "--title", "Groceries", "--content", "milk, eggs"), "created")
	assert.Contains(t, run("add", "--title", "", "--content", "call mom"), "created")

	var views []noteView
	require.NoError(t, json.Unmarshal([]byte(run("list", "--json", "MOM")), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "call mom", views[0].Content)

	listJSON = false
	out := run("list")
	assert.Less(t, strings.Index(out, "call mom"), strings.Index(out, "milk, eggs"))

	assert.Contains(t, run("keys"), "* notes")
}
