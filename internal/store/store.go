// Package store defines how projects are persisted by the HTTP API.
//
// Implementations live in the memory and postgres subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/skeletongen/internal/project"
)

// ErrProjectNotFound is returned when no project has the requested id.
var ErrProjectNotFound = errors.New("store: project not found")

// Store persists project documents.
type Store interface {
	// Save inserts or replaces a project. An empty document id is filled
	// with a UUID; the stored copy is returned.
	Save(ctx context.Context, doc *project.Document) (*project.Document, error)
	// Get returns the project or ErrProjectNotFound.
	Get(ctx context.Context, id string) (*project.Document, error)
	// Delete removes the project or returns ErrProjectNotFound.
	Delete(ctx context.Context, id string) error
	// List returns summaries of every project, most recently updated first.
	List(ctx context.Context) ([]Summary, error)
}

// Summary describes a stored project without its graph.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summarize builds the summary of a document.
func Summarize(doc *project.Document, updated time.Time) Summary {
	return Summary{
		ID:        doc.ID,
		Name:      doc.Name,
		Nodes:     len(doc.Nodes),
		Edges:     len(doc.Edges),
		UpdatedAt: updated,
	}
}
