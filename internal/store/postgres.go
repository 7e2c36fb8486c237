package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store implementation. Each document
// occupies one row keyed by its full path; the body is stored as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed document store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the documents table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS documents (
		   path       text PRIMARY KEY,
		   doc        jsonb NOT NULL,
		   updated_at timestamptz NOT NULL DEFAULT now()
		 )`,
	)
	if err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Read(ctx context.Context, path Path) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE path = $1`,
		path.String(),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", path, err)
	}
	return doc, nil
}

func (s *PostgresStore) Write(ctx context.Context, path Path, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", path, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (path, doc, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (path) DO UPDATE
		 SET doc = EXCLUDED.doc, updated_at = now()`,
		path.String(),
		raw,
	)
	if err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, path Path) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE path = $1`,
		path.String(),
	)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", path, err)
	}
	return nil
}
