// Package memory provides an ephemeral, thread-safe, in-memory
// implementation of store.Store.
//
// Projects are kept in a sync.Map keyed by id. Documents are cloned on the
// way in and out so callers never share state with the store. Contents are
// lost when the process exits.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/skeletongen/internal/project"
	"github.com/specialistvlad/skeletongen/internal/store"
)

type entry struct {
	doc     *project.Document
	updated time.Time
}

// Store is an in-memory implementation of store.Store.
type Store struct {
	projects sync.Map // Key: project id, Value: entry
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a new, empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// Save inserts or replaces a project.
func (s *Store) Save(ctx context.Context, doc *project.Document) (*project.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := doc.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	s.projects.Store(stored.ID, entry{doc: stored, updated: s.now()})
	return stored.Clone(), nil
}

// Get returns a copy of the stored project.
func (s *Store) Get(ctx context.Context, id string) (*project.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.projects.Load(id)
	if !ok {
		return nil, store.ErrProjectNotFound
	}
	return v.(entry).doc.Clone(), nil
}

// Delete removes a project.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := s.projects.LoadAndDelete(id); !ok {
		return store.ErrProjectNotFound
	}
	return nil
}

// List returns summaries, most recently updated first, then by id.
func (s *Store) List(ctx context.Context) ([]store.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []store.Summary{}
	s.projects.Range(func(_, v any) bool {
		e := v.(entry)
		out = append(out, store.Summarize(e.doc, e.updated))
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
