package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/specialistvlad/skeletongen/internal/emit"
	"github.com/specialistvlad/skeletongen/internal/fsutil"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/program"
	"github.com/specialistvlad/skeletongen/internal/project"
)

// Generate renders the whole graph with the configured options.
func (a *App) Generate(ctx context.Context, g *graph.Graph) program.Result {
	return a.generate(ctx, g, a.model.Options())
}

func (a *App) generate(ctx context.Context, g *graph.Graph, opts program.Options) program.Result {
	logger := ctxlog.FromContext(ctx)
	res := program.Generate(g, opts)
	logDiagnostics(ctx, res.Diagnostics)
	logger.Debug("Generated class.",
		"class", res.FileName,
		"fields", res.Fields,
		"units", res.Units,
		"errors", res.Diagnostics.Count(graph.SeverityError),
		"warnings", res.Diagnostics.Count(graph.SeverityWarning))
	return res
}

// Preview renders a single node in isolation.
func (a *App) Preview(ctx context.Context, n graph.Node) emit.Result {
	res := emit.Preview(n, "")
	ctxlog.FromContext(ctx).Debug("Previewed node.", "node", n.ID, "subtype", n.Subtype, "diagnostics", len(res.Diagnostics))
	return res
}

// Validate returns the structural and content findings for a graph.
func (a *App) Validate(ctx context.Context, g *graph.Graph) graph.Diagnostics {
	diags := graph.Validate(g)
	logDiagnostics(ctx, diags)
	return diags
}

func logDiagnostics(ctx context.Context, diags graph.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	for _, d := range diags {
		logger.Debug("Diagnostic.", "severity", d.Severity, "code", d.Code, "node", d.NodeID, "edge", d.EdgeID, "message", d.Message)
	}
}

// Loaded is a project document read from disk.
type Loaded struct {
	Path     string
	Document *project.Document
}

// LoadProjects reads every project file named in paths, searching
// directories for project extensions.
func (a *App) LoadProjects(ctx context.Context, paths []string) ([]Loaded, error) {
	files, err := fsutil.ExpandPaths(paths, project.Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no project files found in %v", paths)
	}

	out := make([]Loaded, 0, len(files))
	for _, f := range files {
		doc, err := project.Load(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, Loaded{Path: f, Document: doc})
	}
	ctxlog.FromContext(ctx).Debug("Loaded projects.", "count", len(out))
	return out, nil
}

// ProjectResult pairs a project with its generated class.
type ProjectResult struct {
	Loaded
	Result program.Result
}

// GenerateProjects loads and renders every project. A single project uses
// the configured class name; with several, each class is named after its
// project so the output files do not collide.
func (a *App) GenerateProjects(ctx context.Context, paths []string) ([]ProjectResult, error) {
	loaded, err := a.LoadProjects(ctx, paths)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectResult, 0, len(loaded))
	for _, l := range loaded {
		opts := a.model.Options()
		if len(loaded) > 1 && l.Document.Name != "" {
			opts.ClassName = l.Document.Name
		}
		out = append(out, ProjectResult{Loaded: l, Result: a.generate(ctx, l.Document.ToGraph(), opts)})
	}
	return out, nil
}

// GenerateDocument renders a project document with the configured options.
func (a *App) GenerateDocument(ctx context.Context, doc *project.Document) program.Result {
	return a.Generate(ctx, doc.ToGraph())
}
