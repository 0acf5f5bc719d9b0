package scanner

import (
	"context"
	"time"

	"github.com/lumipallolabs/sizemap/internal/model"
)

// DefaultProgressInterval is how many directory entries are processed
// between progress reports when the config does not say otherwise.
const DefaultProgressInterval = 1000

// Progress reports scanning progress. Bytes covers files only; directory
// totals are not known until aggregation.
type Progress struct {
	Files   int64
	Dirs    int64
	Bytes   int64
	Elapsed time.Duration
}

// Config tunes a scanner.
type Config struct {
	// Workers is the parallelism of FastWalker. Ignored by Walker.
	Workers int

	// ProgressInterval is the number of processed entries between progress
	// reports.
	ProgressInterval int

	// DiskUsage counts allocated blocks (and dedupes hard links) instead of
	// apparent file sizes, where the platform supports it.
	DiskUsage bool
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 8
	}
	if c.ProgressInterval < 1 {
		c.ProgressInterval = DefaultProgressInterval
	}
	return c
}

// Scanner defines the interface for filesystem scanning
type Scanner interface {
	// Scan scans the given root path and returns a tree of nodes. When the
	// context is cancelled mid-scan it returns the valid partial tree built
	// so far together with ctx.Err(); unvisited directories remain in the
	// tree as zero-size leaves.
	Scan(ctx context.Context, root string) (*model.Node, error)

	// Progress returns a channel that receives progress updates at a
	// bounded cadence. It is closed when Scan returns.
	Progress() <-chan Progress
}
