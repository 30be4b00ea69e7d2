package jotter

import (
	"context"
	"log/slog"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/kv"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// Session is an open store: backend, slot adapter and note service.
type Session = platform.Session

// Config is the on-disk settings file (jotter.yaml).
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring jotter.
type Option = platform.Option

// Backend names.
const (
	BackendFS       = platform.BackendFS
	BackendSQLite   = platform.BackendSQLite
	BackendRedis    = platform.BackendRedis
	BackendPostgres = platform.BackendPostgres
	BackendMemory   = platform.BackendMemory
)

// WithStore injects a ready key-value store.
func WithStore(store kv.Store) Option {
	return platform.WithStore(store)
}

// WithBackend selects the key-value backend by name.
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKey sets the slot holding the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithFormat selects the slot codec ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithVersioning enables or disables git history for the fs backend.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithAutoInit creates the store when missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithDiscardCorrupt starts empty instead of failing on an undecodable slot.
func WithDiscardCorrupt(discard bool) Option {
	return platform.WithDiscardCorrupt(discard)
}

// WithEventBuffer sets the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithRedisPrefix namespaces redis keys.
func WithRedisPrefix(prefix string) Option {
	return platform.WithRedisPrefix(prefix)
}

// WithWatcherErrorHandler registers a callback for watcher runtime errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the store at uri and returns its note service.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// Open is New returning the whole session.
func Open(ctx context.Context, uri string, opts ...Option) (*Session, error) {
	return platform.Open(ctx, uri, opts...)
}

// Init prepares a store explicitly (directory, git repository, schema).
func Init(ctx context.Context, uri string, opts ...Option) (kv.Store, error) {
	return platform.Init(ctx, uri, opts...)
}

// LoadConfig reads a jotter.yaml file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// --- Safety & Utils ---

// ResolveStorePath determines the actual path of a file-backed store.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindConfig returns the config file applying to startDir, if any.
func FindConfig(startDir string) string {
	return platform.FindConfig(startDir)
}

// --- Change reasons ---

const (
	CommitTypeFeat  = platform.CommitTypeFeat
	CommitTypeFix   = platform.CommitTypeFix
	CommitTypeDocs  = platform.CommitTypeDocs
	CommitTypeChore = platform.CommitTypeChore
)

// FormatChangeReason builds a Conventional Commit message.
func FormatChangeReason(ctype, scope, subject, body string) string {
	return platform.FormatChangeReason(ctype, scope, subject, body)
}

// WithChangeReason attaches the commit message used by versioned stores to ctx.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, core.ChangeReasonKey, reason)
}
