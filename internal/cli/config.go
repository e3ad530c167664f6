package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/specialistvlad/skeletongen/internal/config"
	"github.com/specialistvlad/skeletongen/internal/hcl"
	"github.com/spf13/cobra"
)

func newConfigCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the HCL configuration",
	}
	cmd.AddCommand(newConfigInitCommand(g))
	return cmd
}

func newConfigInitCommand(_ *globals) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to " + hcl.DefaultFileName,
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := hcl.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return failure("%s already exists; use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return failure("%s", err.Error())
			}

			data, err := hcl.Writer{}.Write(config.Default())
			if err != nil {
				return failure("%s", err.Error())
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return failure("failed to write %s: %v", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file.")
	return cmd
}
