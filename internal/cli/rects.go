package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/sizemap/internal/config"
	"github.com/lumipallolabs/sizemap/internal/model"
	"github.com/lumipallolabs/sizemap/internal/treemap"
)

// newRectsCmd scans a path and dumps the computed treemap rectangles as
// text, one block per line. Useful for piping into other tools and for
// eyeballing the layout without a terminal UI.
func newRectsCmd(cfg config.Config) *cobra.Command {
	var opts scanOpts
	var width, height float64
	var minCell, padding float64

	cmd := &cobra.Command{
		Use:   "rects [path]",
		Short: "Print treemap rectangles for a scanned path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("invalid bounds %gx%g", width, height)
			}

			root, err := runScan(cmd.Context(), targetPath(args), opts.controllerOptions())
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if root == nil {
				return err
			}

			blocks := treemap.Layout(root, treemap.Rect{W: width, H: height}, treemap.Options{
				MinCell: minCell,
				Padding: padding,
			})

			out := cmd.OutOrStdout()
			for _, b := range blocks {
				var name string
				var size int64
				if b.Pooled {
					name = fmt.Sprintf("(%d small items)", b.PooledCount)
					size = b.PooledSize
				} else {
					name = b.Node.Path
					size = b.Node.Size
				}
				if _, err := fmt.Fprintf(out, "%.2f %.2f %.2f %.2f %s %s\n",
					b.X, b.Y, b.W, b.H, model.FormatSize(size), name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 100, "layout width")
	cmd.Flags().Float64Var(&height, "height", 60, "layout height")
	cmd.Flags().Float64Var(&minCell, "min-cell", cfg.Layout.MinCell, "smallest visible cell edge; smaller siblings are pooled")
	cmd.Flags().Float64Var(&padding, "padding", cfg.Layout.Padding, "inset applied inside directory rectangles")
	opts.register(cmd, cfg.Scan)
	return cmd
}
