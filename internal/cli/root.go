package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/hcl"
	"github.com/spf13/cobra"
)

// Environment variables read by the commands, from the process or a .env file.
const (
	EnvConfig    = "SKELETONGEN_CONFIG"
	EnvDatabase  = "DATABASE_URL"
	EnvEditorURL = "SKELETONGEN_EDITOR_URL"
)

// DefaultDotEnv is the .env file read when present.
const DefaultDotEnv = ".env"

// Options wire the command tree to its surroundings.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Getenv looks up process environment variables. Defaults to os.Getenv.
	Getenv func(string) string
	// DotEnv is the .env file to read. A missing file is ignored.
	DotEnv  string
	NoColor bool
}

type globals struct {
	opts      Options
	config    []string
	logLevel  string
	logFormat string
	noColor   bool
	dotenv    map[string]string
}

// Execute runs the command tree with args. Every failure is returned as an
// *ExitError.
func Execute(ctx context.Context, args []string, opts Options) error {
	root := NewRootCommand(opts)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError("%s", err.Error())
	}
	return failure("%s", err.Error())
}

// NewRootCommand builds the skeletongen command and its subcommands.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.DotEnv == "" {
		opts.DotEnv = DefaultDotEnv
	}
	g := &globals{opts: opts}

	root := &cobra.Command{
		Use:   "skeletongen",
		Short: "Generate Apex class skeletons from solution graphs",
		Long: `skeletongen turns a solution-design graph, as drawn in the visual editor,
into a single compilable Apex class skeleton with placeholder comments where
information is missing.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: g.setup,
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err.Error())
	})

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&g.config, "config", "c", nil, "HCL configuration file or directory (repeatable; default: $"+EnvConfig+" or ./"+hcl.DefaultFileName+")")
	pf.StringVar(&g.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.BoolVar(&g.noColor, "no-color", opts.NoColor, "Disable colored diagnostics.")

	root.AddCommand(
		newGenerateCommand(g),
		newPreviewCommand(g),
		newValidateCommand(g),
		newConfigCommand(g),
		newServeCommand(g),
		newWatchCommand(g),
	)
	return root
}

func (g *globals) setup(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(g.opts.DotEnv); err == nil {
		env, err := godotenv.Read(g.opts.DotEnv)
		if err != nil {
			return failure("failed to read %s: %v", g.opts.DotEnv, err)
		}
		g.dotenv = env
	}
	return nil
}

// env prefers the process environment over the .env file.
func (g *globals) env(key string) string {
	if v := g.opts.Getenv(key); v != "" {
		return v
	}
	return g.dotenv[key]
}

func (g *globals) configPaths() []string {
	if len(g.config) > 0 {
		return g.config
	}
	if v := g.env(EnvConfig); v != "" {
		return strings.Split(v, ",")
	}
	if _, err := os.Stat(hcl.DefaultFileName); err == nil {
		return []string{hcl.DefaultFileName}
	}
	return nil
}

// newApp builds the App from the global flags. Logs go to stderr.
func (g *globals) newApp(className string, opts ...app.Option) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: g.configPaths(),
		ClassName:   className,
		LogFormat:   g.logFormat,
		LogLevel:    g.logLevel,
	})
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	a, err := app.NewApp(g.opts.Stderr, cfg, hcl.NewLoader(), opts...)
	if err != nil {
		return nil, failure("%s", err.Error())
	}
	return a, nil
}

func (g *globals) printer() *Printer {
	return NewPrinter(g.opts.Stderr, g.noColor || color.NoColor)
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError("%s", err.Error())
		}
		return nil
	}
}
