package cli

import (
	"context"
	"time"

	"github.com/lumipallolabs/sizemap/internal/core"
	"github.com/lumipallolabs/sizemap/internal/model"
)

// runScan executes a full scan pipeline synchronously, logging progress
// through the context logger. On cancellation the partial tree is
// returned along with the context error so callers can still print it.
func runScan(ctx context.Context, path string, opts core.Options) (*model.Node, error) {
	logger := loggerFromContext(ctx)
	start := time.Now()

	ctrl := core.NewController(path, opts)

	var root *model.Node
	var scanErr error
	for ev := range ctrl.StartScan(ctx) {
		switch e := ev.(type) {
		case core.ScanProgressEvent:
			logger.Debugf("scanned %d files, %s", e.FilesScanned, model.FormatSize(e.BytesFound))
		case core.ScanCompletedEvent:
			root = e.Root
			scanErr = e.Err
		}
	}
	if root != nil {
		logger.Infof("Scanned %s (%s)", model.FormatSize(root.Size), time.Since(start).Round(time.Millisecond))
	}
	return root, scanErr
}
