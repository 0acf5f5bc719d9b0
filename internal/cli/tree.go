package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/sizemap/internal/config"
	"github.com/lumipallolabs/sizemap/internal/model"
)

// newTreeCmd prints the scanned hierarchy as an ASCII tree with sizes
// and percentages, largest entries first.
func newTreeCmd(cfg config.Config) *cobra.Command {
	var opts scanOpts
	var dirsOnly bool

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print directory sizes as an ASCII tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := runScan(cmd.Context(), targetPath(args), opts.controllerOptions())
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if root == nil {
				return err
			}
			model.SortTreeBySize(root)
			return model.WriteTree(cmd.OutOrStdout(), root, dirsOnly)
		},
	}

	cmd.Flags().BoolVar(&dirsOnly, "dirs-only", false, "show directories only")
	opts.register(cmd, cfg.Scan)
	return cmd
}
