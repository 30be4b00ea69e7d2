package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

// sessionOptions merges config file values and global flags.
func sessionOptions(cmd *cobra.Command) []jotter.Option {
	opts := cfg.Options()
	opts = append(opts,
		jotter.WithLogger(slog.Default()),
		jotter.WithDiscardCorrupt(resetCorrupt),
	)

	if backend != "" {
		opts = append(opts, jotter.WithBackend(backend))
	}
	if slotKey != "" {
		opts = append(opts, jotter.WithKey(slotKey))
	}
	if format != "" {
		opts = append(opts, jotter.WithFormat(format))
	}
	if cmd.Flags().Changed("versioning") {
		opts = append(opts, jotter.WithVersioning(versioning))
	}
	return opts
}

// resolveBackend returns the backend in effect.
func resolveBackend() string {
	switch {
	case backend != "":
		return backend
	case cfg.Backend != "":
		return cfg.Backend
	default:
		return jotter.BackendFS
	}
}

// resolveStore returns the store location in effect, with defaults per backend.
func resolveStore() string {
	loc := storePath
	if loc == "" {
		loc = cfg.Store
	}
	if loc != "" {
		return expandHome(loc)
	}

	switch resolveBackend() {
	case jotter.BackendRedis:
		return "localhost:6379"
	case jotter.BackendPostgres:
		return "postgres://localhost:5432/jotter"
	case jotter.BackendSQLite:
		return filepath.Join(dataDir(), "jotter.db")
	default:
		return dataDir()
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jotter"
	}
	return filepath.Join(home, ".jotter")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// openSession opens the configured store, creating it on first use.
func openSession(ctx context.Context, cmd *cobra.Command, extra ...jotter.Option) *jotter.Session {
	opts := append(sessionOptions(cmd), jotter.WithAutoInit(true))
	opts = append(opts, extra...)

	sess, err := jotter.Open(ctx, resolveStore(), opts...)
	if err != nil {
		fatal("Failed to open notes", err)
	}
	return sess
}
