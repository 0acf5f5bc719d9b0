package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/sizemap/internal/model"
)

// Walker scans breadth-first over an explicit queue of pending directories:
// one directory is claimed, listed and linked per step. Traversal order is
// deterministic (os.ReadDir sorts entries by name), cancellation is honored
// at directory granularity, and entries that fail to list or stat stay in
// the tree as inaccessible zero-size nodes.
type Walker struct {
	cfg        Config
	progressCh chan Progress
}

// NewWalker creates a sequential queue-based scanner.
func NewWalker(cfg Config) *Walker {
	return &Walker{
		cfg:        cfg.withDefaults(),
		progressCh: make(chan Progress, 100),
	}
}

// Progress returns the progress channel
func (w *Walker) Progress() <-chan Progress {
	return w.progressCh
}

// Scan builds the tree rooted at root. A missing or unreadable root is
// fatal; anything below it is not.
func (w *Walker) Scan(ctx context.Context, root string) (*model.Node, error) {
	defer close(w.progressCh)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Lstat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", absRoot, err)
	}

	rootNode := &model.Node{
		Path:  absRoot,
		Name:  filepath.Base(absRoot),
		IsDir: info.IsDir(),
	}
	if !rootNode.IsDir {
		rootNode.Size = info.Size()
		return rootNode, nil
	}

	rootInfo := rootDevice(absRoot)
	var seen sync.Map

	start := time.Now()
	var files, dirs, bytes int64
	var processed int64

	queue := []*model.Node{rootNode}
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			// Directories still queued stay in the tree as zero-size
			// leaves; everything already visited is fully populated.
			return rootNode, ctx.Err()
		default:
		}

		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir.Path)
		if err != nil {
			if dir == rootNode {
				return nil, fmt.Errorf("scan root %s: %w", absRoot, err)
			}
			dir.Inaccessible = true
			continue
		}
		dirs++

		for _, entry := range entries {
			child := &model.Node{
				Path:   filepath.Join(dir.Path, entry.Name()),
				Name:   entry.Name(),
				Parent: dir,
			}
			if entry.IsDir() {
				child.IsDir = true
				if !skipDir(child.Path, entry, rootInfo, &seen) {
					queue = append(queue, child)
				}
			} else {
				info, err := entry.Info()
				if err != nil {
					child.Inaccessible = true
				} else {
					size := fileSize(info, w.cfg.DiskUsage, &seen)
					if size < 0 {
						// Hard link already counted elsewhere.
						size = 0
					}
					child.Size = size
				}
				files++
				bytes += child.Size
			}
			dir.Children = append(dir.Children, child)

			processed++
			if processed%int64(w.cfg.ProgressInterval) == 0 {
				w.report(Progress{
					Files:   files,
					Dirs:    dirs,
					Bytes:   bytes,
					Elapsed: time.Since(start),
				})
			}
		}
	}

	w.report(Progress{
		Files:   files,
		Dirs:    dirs,
		Bytes:   bytes,
		Elapsed: time.Since(start),
	})
	return rootNode, nil
}

// report never blocks; a slow consumer just misses intermediate updates.
func (w *Walker) report(p Progress) {
	select {
	case w.progressCh <- p:
	default:
	}
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
