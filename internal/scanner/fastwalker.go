package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"

	"github.com/lumipallolabs/sizemap/internal/model"
)

// FastWalker scans in parallel with fastwalk, trading traversal order for
// throughput. Entries are collected flat and assembled into a tree
// afterwards; children are then sorted by name so runs stay deterministic
// despite the parallel walk.
type FastWalker struct {
	cfg        Config
	progressCh chan Progress

	files     atomic.Int64
	dirs      atomic.Int64
	bytes     atomic.Int64
	processed atomic.Int64
}

// NewFastWalker creates a parallel filesystem scanner.
func NewFastWalker(cfg Config) *FastWalker {
	return &FastWalker{
		cfg:        cfg.withDefaults(),
		progressCh: make(chan Progress, 100),
	}
}

// Progress returns the progress channel
func (w *FastWalker) Progress() <-chan Progress {
	return w.progressCh
}

// nodeEntry is a temporary structure for building the tree
type nodeEntry struct {
	path         string
	name         string
	size         int64
	isDir        bool
	inaccessible bool
}

// Scan scans the filesystem starting at root using fastwalk
func (w *FastWalker) Scan(ctx context.Context, root string) (*model.Node, error) {
	defer close(w.progressCh)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Lstat(absRoot); err != nil {
		return nil, fmt.Errorf("scan root %s: %w", absRoot, err)
	}

	rootInfo := rootDevice(absRoot)
	start := time.Now()

	// Lock-free entry collection through a buffered channel drained by a
	// single collector.
	entryCh := make(chan nodeEntry, 50000)
	var entries []nodeEntry
	var g errgroup.Group
	g.Go(func() error {
		collected := make([]nodeEntry, 0, 4096)
		for e := range entryCh {
			collected = append(collected, e)
		}
		entries = collected
		return nil
	})

	// Inode dedup for hard links and mount-point loops.
	var seen sync.Map

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.cfg.Workers,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == absRoot {
			if err != nil {
				// An unreadable root aborts the walk outright.
				return fmt.Errorf("scan root %s: %w", absRoot, err)
			}
			return nil
		}

		if err != nil {
			// Keep the failed entry findable instead of dropping it.
			entryCh <- nodeEntry{
				path:         path,
				name:         filepath.Base(path),
				inaccessible: true,
			}
			w.step(start)
			return nil
		}

		if d.IsDir() {
			if skipDir(path, d, rootInfo, &seen) {
				return fs.SkipDir
			}
			w.dirs.Add(1)
			entryCh <- nodeEntry{path: path, name: d.Name(), isDir: true}
			w.step(start)
			return nil
		}

		var size int64
		var inaccessible bool
		info, err := d.Info()
		if err != nil {
			inaccessible = true
		} else {
			size = fileSize(info, w.cfg.DiskUsage, &seen)
			if size < 0 {
				// Hard link already counted under another path.
				return nil
			}
		}

		w.files.Add(1)
		w.bytes.Add(size)
		entryCh <- nodeEntry{
			path:         path,
			name:         d.Name(),
			size:         size,
			inaccessible: inaccessible,
		}
		w.step(start)
		return nil
	})

	close(entryCh)
	_ = g.Wait()

	rootNode := w.buildTree(absRoot, entries)
	w.report(Progress{
		Files:   w.files.Load(),
		Dirs:    w.dirs.Load(),
		Bytes:   w.bytes.Load(),
		Elapsed: time.Since(start),
	})

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			// Partial but valid tree from the entries collected before
			// cancellation.
			return rootNode, walkErr
		}
		return nil, walkErr
	}
	return rootNode, nil
}

// step bumps the processed counter and reports at the configured cadence.
func (w *FastWalker) step(start time.Time) {
	if w.processed.Add(1)%int64(w.cfg.ProgressInterval) != 0 {
		return
	}
	w.report(Progress{
		Files:   w.files.Load(),
		Dirs:    w.dirs.Load(),
		Bytes:   w.bytes.Load(),
		Elapsed: time.Since(start),
	})
}

func (w *FastWalker) report(p Progress) {
	select {
	case w.progressCh <- p:
	default:
	}
}

// buildTree constructs the tree structure from flat entries
func (w *FastWalker) buildTree(rootPath string, entries []nodeEntry) *model.Node {
	nodes := make(map[string]*model.Node, len(entries)+1)
	childCounts := make(map[string]int, len(entries)/10+1)

	rootNode := &model.Node{
		Path:  rootPath,
		Name:  filepath.Base(rootPath),
		IsDir: true,
	}
	nodes[rootPath] = rootNode

	// First pass: count children per parent and create nodes
	for i := range entries {
		e := &entries[i]
		childCounts[filepath.Dir(e.path)]++

		if existing, ok := nodes[e.path]; ok {
			// An error event can arrive alongside the listing event for
			// the same path; merge instead of duplicating.
			existing.Inaccessible = existing.Inaccessible || e.inaccessible
			continue
		}
		nodes[e.path] = &model.Node{
			Path:         e.path,
			Name:         e.name,
			Size:         e.size,
			IsDir:        e.isDir,
			Inaccessible: e.inaccessible,
		}
	}

	// Pre-allocate Children slices
	for path, count := range childCounts {
		if node, exists := nodes[path]; exists {
			node.Children = make([]*model.Node, 0, count)
		}
	}

	// Second pass: link parent/child relationships
	linked := make(map[string]bool, len(entries))
	for i := range entries {
		e := &entries[i]
		if linked[e.path] {
			continue
		}
		linked[e.path] = true

		node := nodes[e.path]
		if parent, exists := nodes[filepath.Dir(e.path)]; exists {
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		}
	}

	// Canonical ordering: the parallel walk delivers entries in arbitrary
	// order, so sort every child list by name.
	stack := []*model.Node{rootNode}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sort.Slice(n.Children, func(i, j int) bool {
			return n.Children[i].Name < n.Children[j].Name
		})
		stack = append(stack, n.Children...)
	}

	return rootNode
}

// Ensure FastWalker implements Scanner
var _ Scanner = (*FastWalker)(nil)
