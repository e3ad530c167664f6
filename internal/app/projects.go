package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/specialistvlad/skeletongen/internal/program"
	"github.com/specialistvlad/skeletongen/internal/project"
	"github.com/specialistvlad/skeletongen/internal/store"
)

// SaveProject stores a project document.
func (a *App) SaveProject(ctx context.Context, doc *project.Document) (*project.Document, error) {
	saved, err := a.store.Save(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Project saved.", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// GetProject fetches a stored project.
func (a *App) GetProject(ctx context.Context, id string) (*project.Document, error) {
	return a.store.Get(ctx, id)
}

// DeleteProject removes a stored project.
func (a *App) DeleteProject(ctx context.Context, id string) error {
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Project deleted.", "id", id)
	return nil
}

// ListProjects summarizes the stored projects.
func (a *App) ListProjects(ctx context.Context) ([]store.Summary, error) {
	return a.store.List(ctx)
}

// GenerateStored renders a stored project.
func (a *App) GenerateStored(ctx context.Context, id string) (program.Result, error) {
	doc, err := a.store.Get(ctx, id)
	if err != nil {
		return program.Result{}, err
	}
	return a.GenerateDocument(ctx, doc), nil
}
