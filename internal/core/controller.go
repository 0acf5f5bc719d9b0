// Package core drives the scan pipeline without any UI dependencies.
// The TUI and the headless commands both sit on top of the Controller,
// consuming its event stream.
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lumipallolabs/sizemap/internal/logging"
	"github.com/lumipallolabs/sizemap/internal/model"
	"github.com/lumipallolabs/sizemap/internal/scanner"
)

// Options configure a Controller.
type Options struct {
	Scan     scanner.Config
	Parallel bool // use the concurrent fastwalk scanner
}

// Controller manages scanning and aggregation for a single path.
// A scan runs in its own goroutine; state is read through snapshots.
type Controller struct {
	mu sync.RWMutex

	path   string
	opts   Options
	root   *model.Node
	total  int64
	volume model.Volume
	scan   ScanState
	err    error

	scanner scanner.Scanner
}

// NewController creates a controller for scanning path.
func NewController(path string, opts Options) *Controller {
	return &Controller{
		path:   path,
		opts:   opts,
		volume: model.VolumeFor(path),
	}
}

func (c *Controller) newScanner() scanner.Scanner {
	if c.opts.Parallel {
		return scanner.NewFastWalker(c.opts.Scan)
	}
	return scanner.NewWalker(c.opts.Scan)
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return AppState{
		Path:   c.path,
		Root:   c.root,
		Total:  c.total,
		Volume: c.volume,
		Scan:   c.scan,
		Error:  c.err,
	}
}

// Path returns the scan target
func (c *Controller) Path() string {
	return c.path
}

// Root returns the root node of the scanned tree, nil until a scan completes
func (c *Controller) Root() *model.Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root
}

// Volume returns capacity info for the filesystem containing the scan path
func (c *Controller) Volume() model.Volume {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volume
}

// ScanState returns the current scan state
func (c *Controller) ScanState() ScanState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scan
}

// StartScan begins a scan of the configured path. The previous tree is
// discarded so a rescan starts from a clean slate. Events arrive on the
// returned channel, which closes when the pipeline finishes.
func (c *Controller) StartScan(ctx context.Context) <-chan Event {
	c.mu.Lock()
	c.scanner = c.newScanner()
	c.scan = ScanState{Phase: PhaseScanning, StartTime: time.Now()}
	c.root = nil
	c.total = 0
	c.err = nil
	c.mu.Unlock()

	eventCh := make(chan Event, 100)
	go c.runScan(ctx, eventCh)
	return eventCh
}

func (c *Controller) runScan(ctx context.Context, eventCh chan Event) {
	defer close(eventCh)

	logging.Debug.Debug("starting scan", "path", c.path)
	eventCh <- ScanStartedEvent{Path: c.path}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range c.scanner.Progress() {
			c.mu.Lock()
			c.scan.FilesScanned = p.Files
			c.scan.DirsScanned = p.Dirs
			c.scan.BytesFound = p.Bytes
			c.mu.Unlock()

			eventCh <- ScanProgressEvent{
				FilesScanned: p.Files,
				DirsScanned:  p.Dirs,
				BytesFound:   p.Bytes,
			}
		}
	}()

	root, err := c.scanner.Scan(ctx, c.path)
	wg.Wait()

	cancelled := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if err != nil && !cancelled {
		c.mu.Lock()
		c.scan.Phase = PhaseIdle
		c.err = err
		c.mu.Unlock()

		eventCh <- ScanCompletedEvent{Err: err}
		eventCh <- ErrorEvent{Err: err}
		return
	}

	// Aggregation runs only after the walk has fully stopped, so sizes
	// are consistent even for a cancelled partial tree.
	c.mu.Lock()
	c.scan.Phase = PhaseAggregating
	c.mu.Unlock()
	eventCh <- PhaseChangedEvent{Phase: PhaseAggregating}

	logging.Debug.Debug("aggregating sizes")
	total := model.Aggregate(root)

	c.mu.Lock()
	c.scan.Phase = PhaseComplete
	c.root = root
	c.total = total
	c.err = err
	c.mu.Unlock()

	eventCh <- PhaseChangedEvent{Phase: PhaseComplete}
	eventCh <- ScanCompletedEvent{Root: root, Total: total, Err: err}

	logging.Debug.Debug("scan complete", "total", total, "cancelled", cancelled)
}

// FinalizeScan marks the scan as fully done (after the UI's brief
// "Complete" display).
func (c *Controller) FinalizeScan() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scan.Phase = PhaseIdle
}
