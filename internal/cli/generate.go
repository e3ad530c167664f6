package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/program"
	"github.com/specialistvlad/skeletongen/internal/project"
	"github.com/spf13/cobra"
)

func newGenerateCommand(g *globals) *cobra.Command {
	var (
		output    string
		className string
		strict    bool
	)
	cmd := &cobra.Command{
		Use:   "generate <project|dir>...",
		Short: "Generate an Apex class from one or more project files",
		Long: `Generate reads project files (.json, .yaml or .yml, or directories holding
them) and writes one Apex class per project. Without --output the source is
printed to stdout. Diagnostics are printed to stderr.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.newApp(className)
			if err != nil {
				return err
			}
			ctx := a.Context(cmd.Context())

			results, err := a.GenerateProjects(ctx, args)
			if err != nil {
				return failure("%s", err.Error())
			}

			p := g.printer()
			errs := 0
			for _, r := range results {
				p.Diagnostics(r.Path, r.Result.Diagnostics)
				errs += r.Result.Diagnostics.Count(graph.SeverityError)
				if err := writeResult(cmd.OutOrStdout(), output, len(results), r.Result); err != nil {
					return failure("%s", err.Error())
				}
			}
			if strict && errs > 0 {
				return failure("generation reported %s", plural(errs, "error"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory, or a .cls file when generating a single project.")
	cmd.Flags().StringVar(&className, "class", "", "Class name (overrides the configuration).")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 1 when any error diagnostic is reported.")
	return cmd
}

// writeResult prints the class to stdout or writes it under output.
func writeResult(stdout io.Writer, output string, count int, res program.Result) error {
	if output == "" {
		_, err := io.WriteString(stdout, res.SourceText)
		return err
	}

	path := filepath.Join(output, res.FileName)
	if count == 1 && strings.EqualFold(filepath.Ext(output), program.FileExtension) {
		path = output
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(res.SourceText), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

func newPreviewCommand(g *globals) *cobra.Command {
	var nodeID string
	cmd := &cobra.Command{
		Use:   "preview <project> --node <id>",
		Short: "Render a single node of a project on its own",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nodeID == "" {
				return usageError("required flag \"node\" not set")
			}
			a, err := g.newApp("")
			if err != nil {
				return err
			}
			ctx := a.Context(cmd.Context())

			doc, err := project.Load(ctx, args[0])
			if err != nil {
				return failure("%s", err.Error())
			}
			nd, ok := findNode(doc, nodeID)
			if !ok {
				return failure("node %q not found in %s", nodeID, args[0])
			}
			res := a.Preview(ctx, nd.ToNode())
			g.printer().Diagnostics(args[0], res.Diagnostics)
			_, err = io.WriteString(cmd.OutOrStdout(), res.SourceText)
			return err
		},
	}
	cmd.Flags().StringVarP(&nodeID, "node", "n", "", "Id of the node to preview.")
	return cmd
}

func findNode(doc *project.Document, id string) (project.NodeDoc, bool) {
	for _, nd := range doc.Nodes {
		if nd.ID == id {
			return nd, true
		}
	}
	return project.NodeDoc{}, false
}

func newValidateCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project|dir>...",
		Short: "Check project graphs without generating code",
		Long: `Validate reports structural and content findings for each project. It exits
with status 1 when any project has an error diagnostic.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.newApp("")
			if err != nil {
				return err
			}
			ctx := a.Context(cmd.Context())

			loaded, err := a.LoadProjects(ctx, args)
			if err != nil {
				return failure("%s", err.Error())
			}
			return validateAll(ctx, a, g.printer(), loaded)
		},
	}
}

func validateAll(ctx context.Context, a *app.App, p *Printer, loaded []app.Loaded) error {
	failed := 0
	for _, l := range loaded {
		diags := a.Validate(ctx, l.Document.ToGraph())
		p.Diagnostics(l.Path, diags)
		p.Summary(l.Path, diags)
		if diags.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return failure("validation failed for %d of %d projects", failed, len(loaded))
	}
	return nil
}
