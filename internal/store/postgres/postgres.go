// Package postgres implements store.Store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/specialistvlad/skeletongen/internal/project"
	"github.com/specialistvlad/skeletongen/internal/store"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore implements store.Store using PostgreSQL.
type PGStore struct {
	db DB
}

var _ store.Store = (*PGStore)(nil)

// New creates a PGStore backed by the given connection pool.
func New(db DB) *PGStore {
	return &PGStore{db: db}
}

// Connect opens a pool for databaseURL and makes sure the schema exists.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, *PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("store: ping: %w", err)
	}
	s := New(pool)
	if err := s.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pool, s, nil
}

// Save inserts or replaces a project.
func (s *PGStore) Save(ctx context.Context, doc *project.Document) (*project.Document, error) {
	stored := doc.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("store: encode project: %w", err)
	}

	_, err = s.db.Exec(ctx, `
INSERT INTO skeletongen_projects (id, name, document, node_count, edge_count)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    name       = EXCLUDED.name,
    document   = EXCLUDED.document,
    node_count = EXCLUDED.node_count,
    edge_count = EXCLUDED.edge_count,
    updated_at = NOW()`,
		stored.ID, stored.Name, data, len(stored.Nodes), len(stored.Edges),
	)
	if err != nil {
		return nil, fmt.Errorf("store: save project: %w", err)
	}
	return stored, nil
}

// Get fetches one project by id.
func (s *PGStore) Get(ctx context.Context, id string) (*project.Document, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT document FROM skeletongen_projects WHERE id = $1`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		return nil, fmt.Errorf("store: get project: %w", err)
	}

	doc, err := project.ParseBytes(data, project.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("store: decode project %s: %w", id, err)
	}
	doc.ID = id
	return doc, nil
}

// Delete removes a project.
func (s *PGStore) Delete(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM skeletongen_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.ErrProjectNotFound
	}
	return nil
}

// List returns summaries ordered by update time, newest first.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) List(ctx context.Context) ([]store.Summary, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, name, node_count, edge_count, updated_at
FROM skeletongen_projects
ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()

	out := []store.Summary{}
	for rows.Next() {
		var sum store.Summary
		var updated time.Time
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Nodes, &sum.Edges, &updated); err != nil {
			return nil, fmt.Errorf("store: scan project: %w", err)
		}
		sum.UpdatedAt = updated
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	return out, nil
}
