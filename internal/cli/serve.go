package cli

import (
	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/livepreview"
	"github.com/specialistvlad/skeletongen/internal/server"
	"github.com/specialistvlad/skeletongen/internal/store/postgres"
	"github.com/spf13/cobra"
)

func newServeCommand(g *globals) *cobra.Command {
	var (
		addr        string
		databaseURL string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator over HTTP",
		Long: `Serve exposes generation, preview, validation and project storage over HTTP.
Projects are kept in memory unless a PostgreSQL URL is given with
--database-url or $` + EnvDatabase + `.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if databaseURL == "" {
				databaseURL = g.env(EnvDatabase)
			}

			var opts []app.Option
			if databaseURL != "" {
				pool, pg, err := postgres.Connect(ctx, databaseURL)
				if err != nil {
					return failure("%s", err.Error())
				}
				defer pool.Close()
				opts = append(opts, app.WithStore(pg))
			}

			a, err := g.newApp("", opts...)
			if err != nil {
				return err
			}
			if databaseURL != "" {
				a.Logger().Info("Using PostgreSQL project store.")
			}
			if err := server.New(a).Listen(a.Context(ctx), addr); err != nil {
				return failure("%s", err.Error())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "Listen address.")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (default: $"+EnvDatabase+").")
	return cmd
}

func newWatchCommand(g *globals) *cobra.Command {
	opts := livepreview.Options{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Answer live preview requests from a running editor",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.URL == "" {
				opts.URL = g.env(EnvEditorURL)
			}
			if opts.URL == "" {
				return usageError("an editor URL is required: pass --editor-url or set %s", EnvEditorURL)
			}
			a, err := g.newApp("")
			if err != nil {
				return err
			}
			if err := livepreview.Run(cmd.Context(), a, opts); err != nil {
				return failure("%s", err.Error())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.URL, "editor-url", "", "socket.io URL of the editor (default: $"+EnvEditorURL+").")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "/", "socket.io namespace.")
	cmd.Flags().BoolVar(&opts.InsecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification.")
	cmd.Flags().DurationVar(&opts.ConnectTimeout, "connect-timeout", livepreview.DefaultConnectTimeout, "How long to wait for the initial connection.")
	return cmd
}
