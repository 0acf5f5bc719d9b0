// Package cli implements the sizemap command-line interface.
//
// The bare command scans a path and opens the interactive treemap TUI.
// Two headless subcommands reuse the same pipeline: tree prints an ASCII
// size tree, rects dumps the computed treemap rectangles.
//
// All commands support --verbose (-v) for debug-level logging and read
// optional defaults from the user config file.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/sizemap/internal/config"
	"github.com/lumipallolabs/sizemap/internal/core"
	"github.com/lumipallolabs/sizemap/internal/scanner"
	"github.com/lumipallolabs/sizemap/internal/ui"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version,
// injected by main via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// scanOpts holds the flags shared by every command that runs a scan.
type scanOpts struct {
	parallel         bool
	workers          int
	progressInterval int
	diskUsage        bool
}

// register adds the shared scan flags to cmd, defaulted from cfg.
func (o *scanOpts) register(cmd *cobra.Command, cfg config.Scan) {
	o.parallel = cfg.Parallel
	o.workers = cfg.Workers
	o.progressInterval = cfg.ProgressInterval
	o.diskUsage = cfg.DiskUsage

	cmd.Flags().BoolVar(&o.parallel, "parallel", o.parallel, "scan with concurrent directory workers")
	cmd.Flags().IntVar(&o.workers, "workers", o.workers, "number of scan workers in parallel mode")
	cmd.Flags().IntVar(&o.progressInterval, "progress-interval", o.progressInterval, "entries between progress reports")
	cmd.Flags().BoolVar(&o.diskUsage, "disk-usage", o.diskUsage, "measure allocated disk blocks instead of apparent size")
}

func (o *scanOpts) controllerOptions() core.Options {
	return core.Options{
		Scan: scanner.Config{
			Workers:          o.workers,
			ProgressInterval: o.progressInterval,
			DiskUsage:        o.diskUsage,
		},
		Parallel: o.parallel,
	}
}

// targetPath resolves the positional path argument, defaulting to the
// current directory.
func targetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// Execute runs the sizemap CLI.
func Execute() error {
	cfg, cfgErr := config.Load(config.Path())

	var verbose bool
	var opts scanOpts

	root := &cobra.Command{
		Use:          "sizemap [path]",
		Short:        "Explore directory sizes as an interactive treemap",
		Long:         `sizemap scans a directory tree, aggregates sizes bottom-up and presents the result as a squarified treemap alongside a navigable size tree.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			if cfgErr != nil {
				logger.Warnf("Config file ignored: %v", cfgErr)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := core.NewController(targetPath(args), opts.controllerOptions())
			p := tea.NewProgram(
				ui.NewApp(ctrl, cfg.Layout),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err := p.Run()
			return err
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sizemap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	opts.register(root, cfg.Scan)

	root.AddCommand(newTreeCmd(cfg))
	root.AddCommand(newRectsCmd(cfg))

	return root.Execute()
}
