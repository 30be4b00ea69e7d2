// Package postgres provides a kv.Store backed by a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aretw0/jotter/pkg/kv"
)

// DefaultTable holds the slots unless another name is given.
const DefaultTable = "jotter_kv"

// Store is a kv.Store over one table of (key, value) rows.
type Store struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// Open connects to the database described by dsn.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &Store{pool: pool, table: DefaultTable, logger: logger}, nil
}

// Initialize checks connectivity and creates the table if needed.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres unreachable: %w", err)
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    value BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, pgx.Identifier{s.table}.Sanitize()))
	if err != nil {
		return fmt.Errorf("create %s table: %w", s.table, err)
	}

	if s.logger != nil {
		s.logger.Debug("postgres store ready", "table", s.table)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.ident()), key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value in a single statement.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.pool.Exec(ctx, fmt.Sprintf(
		`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.ident()), key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.ident()), key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return kv.ErrNotFound
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := kv.ValidatePattern(pattern); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT key FROM %s`, s.ident()))
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	all, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	var keys []string
	for _, k := range all {
		if kv.Match(pattern, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) ident() string {
	return pgx.Identifier{s.table}.Sanitize()
}

// StoreState is the introspection snapshot of a Store.
type StoreState struct {
	Host  string `json:"host"`
	Table string `json:"table"`
	Conns int32  `json:"conns"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Host:  s.pool.Config().ConnConfig.Host,
		Table: s.table,
		Conns: s.pool.Stat().TotalConns(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "postgres"
}

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.Initializer = (*Store)(nil)
)
