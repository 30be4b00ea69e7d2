// Package jotter is the composition root of the jotter note keeper.
//
// It connects the note domain (pkg/core) with a key-value backend through
// the slot adapter (pkg/storage). The whole note collection lives in one
// named slot and is rewritten after every change, so any backend able to
// store a value under a key can hold a notebook.
//
// Backends:
//
//   - fs: one file per slot, atomic replace, optional git history and
//     change notifications.
//   - sqlite: a single kv table.
//   - redis: plain GET/SET under a key prefix.
//   - postgres: a single kv table in an existing database.
//   - memory: process-local, for tests and throwaway sessions.
//
// Usage:
//
//	svc, err := jotter.New("./notes",
//		jotter.WithAutoInit(true),
//		jotter.WithLogger(logger),
//	)
//
//	note, err := svc.Create(ctx, "Groceries", "milk, eggs")
//	hits, err := svc.Query(ctx, "milk")
package jotter
