package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/specialistvlad/skeletongen/internal/ctxlog"
)

// Load reads a project file, choosing the format from its extension.
func Load(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	logger.Debug("Loaded project.", "path", path, "name", doc.Name, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return doc, nil
}

// Save writes a project file, choosing the format from its extension.
func Save(ctx context.Context, path string, doc *Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Saved project.", "path", path, "format", format)
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the name the editor saves a project under: whitespace runs
// replaced by underscores, with a .json extension.
func FileName(name string) string {
	return whitespace.ReplaceAllString(name, "_") + ".json"
}
