package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/skeletongen/internal/config"
	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/specialistvlad/skeletongen/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// FileExtension is the extension searched for when a directory is given.
const FileExtension = ".hcl"

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	env map[string]string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a loader whose env object reflects the process
// environment.
func NewLoader() *Loader {
	return NewLoaderWithEnv(environ())
}

// NewLoaderWithEnv creates a loader with an explicit env object.
func NewLoaderWithEnv(env map[string]string) *Loader {
	return &Loader{env: env}
}

// fileRoot lists every top-level block a configuration file may contain.
type fileRoot struct {
	Class  *classBlock  `hcl:"class,block"`
	Labels *labelsBlock `hcl:"labels,block"`
}

type classBlock struct {
	Name     *string `hcl:"name,optional"`
	Sharing  *string `hcl:"sharing,optional"`
	Indent   *int    `hcl:"indent,optional"`
	Header   *string `hcl:"header,optional"`
	NoHeader *bool   `hcl:"no_header,optional"`
}

// labelsBlock is decoded attribute by attribute because every list may be
// written either as a list or as a comma-separated string.
type labelsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Load merges the given files, or the .hcl files below the given
// directories, over config.Default in order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ExpandPaths(paths, FileExtension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.Default()
	parser := hclparse.NewParser()
	evalCtx := l.evalContext()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		root.Class.apply(&model.Class)
		if root.Labels != nil {
			if err := decodeLabels(root.Labels.Body, evalCtx, &model.Labels); err != nil {
				return nil, fmt.Errorf("failed to decode labels in %s: %w", file, err)
			}
		}
		model.Sources = append(model.Sources, file)
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("HCL loading complete.", "files", len(model.Sources), "class", model.Class.Name)
	return model, nil
}

func (c *classBlock) apply(dst *config.Class) {
	if c == nil {
		return
	}
	if c.Name != nil {
		dst.Name = *c.Name
	}
	if c.Sharing != nil {
		dst.Sharing = *c.Sharing
	}
	if c.Indent != nil {
		dst.Indent = *c.Indent
	}
	if c.Header != nil {
		dst.Header = *c.Header
	}
	if c.NoHeader != nil {
		dst.NoHeader = *c.NoHeader
	}
}

func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value, len(l.env))
	for k, v := range l.env {
		if hclIdentifier(k) {
			env[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{
		"env": cty.ObjectVal(env),
	}}
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			out[k] = v
		}
	}
	return out
}

// hclIdentifier reports whether k can be used in an env.NAME traversal.
func hclIdentifier(k string) bool {
	for i, r := range k {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return k != ""
}
