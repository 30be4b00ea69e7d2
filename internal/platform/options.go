package platform

import (
	"log/slog"

	"github.com/aretw0/jotter/pkg/kv"
)

// Backend names accepted by WithBackend.
const (
	BackendFS       = "fs"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// options holds the internal configuration for a jotter session.
type options struct {
	store          kv.Store
	backend        string
	logger         *slog.Logger
	key            string
	format         string
	versioning     *bool
	autoInit       bool
	mustExist      bool
	readOnly       bool
	forceTemp      bool
	devSafety      bool
	discardCorrupt bool
	eventBuffer    int
	redisPrefix    string
	errorHandler   func(error)
}

// Option defines a functional option for configuring jotter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend:   BackendFS,
		devSafety: true,
	}
}

// WithStore injects a ready key-value store (e.g. a memory store in tests).
// If provided, the backend option and the URI are ignored.
func WithStore(store kv.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithBackend selects the key-value backend by name: "fs" (default),
// "sqlite", "redis", "postgres" or "memory".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithLogger sets the logger for every layer of the session.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKey sets the slot holding the collection. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithFormat selects the slot codec: "json" (default) or "yaml".
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithVersioning enables or disables git history for the fs backend.
// When not set, versioning is enabled only if the store directory is
// already a git repository.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.versioning = &enabled
	}
}

// WithAutoInit creates the store (directory, git repository) when missing.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Mutations fail with core.ErrReadOnly and nothing is written.
// 2. Initialization (Mkdir, Git Init) is skipped.
// 3. Dev Safety (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the store into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true), file-backed stores are re-rooted in a
// temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithDiscardCorrupt starts with an empty collection when the stored slot
// cannot be decoded, instead of failing. The corrupt slot is removed unless
// the session is read-only.
func WithDiscardCorrupt(discard bool) Option {
	return func(o *options) {
		o.discardCorrupt = discard
	}
}

// WithEventBuffer sets the buffer between the store watcher and consumers.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithRedisPrefix namespaces redis keys. Defaults to "jotter:".
func WithRedisPrefix(prefix string) Option {
	return func(o *options) {
		o.redisPrefix = prefix
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the
// fs watcher loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
