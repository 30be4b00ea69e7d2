package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/adapters/postgres"
	"github.com/aretw0/jotter/pkg/adapters/redis"
	"github.com/aretw0/jotter/pkg/adapters/sqlite"
	"github.com/aretw0/jotter/pkg/kv"
	"github.com/aretw0/jotter/pkg/storage"
)

// Init prepares the store at uri (directory, git repository, schema) and
// returns the initialized backend.
func Init(ctx context.Context, uri string, opts ...Option) (kv.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStore(ctx, uri, o)
}

// initStore selects and initializes the backend.
func initStore(ctx context.Context, uri string, o *options) (kv.Store, error) {
	var store kv.Store
	var err error

	switch {
	case o.store != nil:
		store = o.store
	case o.backend == BackendFS || o.backend == "":
		store, err = initFS(uri, o)
	case o.backend == BackendSQLite:
		store, err = initSQLite(uri, o)
	case o.backend == BackendRedis:
		prefix := o.redisPrefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store = redis.New(uri, prefix, o.logger)
	case o.backend == BackendPostgres:
		store, err = postgres.Open(ctx, uri, o.logger)
	case o.backend == BackendMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("unknown backend: %s", o.backend)
	}
	if err != nil {
		return nil, err
	}

	if initializer, ok := store.(kv.Initializer); ok {
		if err := initializer.Initialize(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

// resolvePath applies dev safety to a file-backed store location.
func resolvePath(path string, o *options) (string, bool) {
	// Read-only sessions cannot damage anything, and the user may opt out.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveStorePath(path, useTemp)

	if o.logger != nil && useTemp && resolved != filepath.Clean(path) {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}
	return resolved, useTemp
}

// initFS builds the filesystem backend.
func initFS(path string, o *options) (kv.Store, error) {
	resolved, useTemp := resolvePath(path, o)

	codec, err := storage.CodecByName(o.format)
	if err != nil {
		return nil, err
	}

	// Smart versioning detection: an existing git repository keeps its history.
	versioning := false
	if o.versioning != nil {
		versioning = *o.versioning
	} else if _, err := os.Stat(filepath.Join(resolved, ".git")); err == nil {
		versioning = true
		if o.logger != nil {
			o.logger.Debug("auto-detected versioning", "reason", ".git present")
		}
	}

	return fs.NewStore(fs.Config{
		Path:         resolved,
		Extension:    "." + codec.Name(),
		Versioning:   versioning,
		AutoInit:     o.autoInit,
		MustExist:    o.mustExist || (!o.autoInit && !useTemp),
		ReadOnly:     o.readOnly,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	}), nil
}

// initSQLite opens the database file, creating its directory when allowed.
func initSQLite(path string, o *options) (kv.Store, error) {
	if path == "" || path == "." {
		path = "jotter.db"
	}
	resolved, useTemp := resolvePath(path, o)

	if dir := filepath.Dir(resolved); o.autoInit || useTemp {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	return sqlite.Open(resolved, o.logger)
}
