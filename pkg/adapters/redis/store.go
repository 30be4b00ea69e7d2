// Package redis provides a kv.Store backed by a Redis server.
// Keys are namespaced with a prefix so several stores can share a database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/aretw0/jotter/pkg/kv"
)

// DefaultPrefix namespaces every key written by a Store.
const DefaultPrefix = "jotter:"

// Store is a kv.Store over plain GET/SET/DEL.
type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// New connects to the server described by url.
// url is either a redis:// URL or a bare host:port address.
func New(url, prefix string, logger *slog.Logger) *Store {
	opt, err := redis.ParseURL(url)
	if err != nil {
		if logger != nil {
			logger.Debug("not a redis URL, using it as address", "addr", url)
		}
		opt = &redis.Options{Addr: url}
	}
	return NewWithClient(redis.NewClient(opt), prefix, logger)
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string, logger *slog.Logger) *Store {
	return &Store{client: client, prefix: prefix, logger: logger}
}

// Initialize checks the server is reachable.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

// Set replaces the value; a single SET is atomic on the server.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if n == 0 {
		return kv.ErrNotFound
	}
	return nil
}

// Keys walks the prefix with SCAN and filters with kv.Match.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := kv.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		k := strings.TrimPrefix(iter.Val(), s.prefix)
		if kv.Match(pattern, k) {
			keys = append(keys, k)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// StoreState is the introspection snapshot of a Store.
type StoreState struct {
	Addr   string `json:"addr"`
	DB     int    `json:"db"`
	Prefix string `json:"prefix"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	opt := s.client.Options()
	return StoreState{Addr: opt.Addr, DB: opt.DB, Prefix: s.prefix}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "redis"
}

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.Initializer = (*Store)(nil)
)
