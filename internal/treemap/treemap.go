// Package treemap computes squarified treemap layouts for aggregated
// filesystem trees. Layout is a pure function of the tree, the target
// rectangle and the options: identical inputs always produce identical
// geometry, so a viewport resize only needs a re-layout, not a re-scan.
package treemap

import (
	"math"
	"sort"

	"github.com/lumipallolabs/sizemap/internal/model"
)

// Rect is an axis-aligned rectangle in display units.
type Rect struct {
	X, Y, W, H float64
}

// Inset shrinks the rectangle by p units on every side.
func (r Rect) Inset(p float64) Rect {
	return Rect{X: r.X + p, Y: r.Y + p, W: r.W - 2*p, H: r.H - 2*p}
}

// Contains reports whether the point (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Block is one laid-out rectangle. Node is nil for a pooled "small files"
// block, which aggregates siblings too small to draw individually.
type Block struct {
	Node *model.Node
	Rect

	// Depth is the distance from the layout root: direct children are 1.
	Depth int

	Pooled      bool
	PooledCount int
	PooledSize  int64
}

// Options control layout granularity.
type Options struct {
	// MinCell is the minimum drawable dimension in display units. Rows and
	// rectangles thinner than this are pruned, and children whose
	// proportional area falls below MinCell² are pooled. Defaults to 1.
	MinCell float64

	// Padding is the inset reserved inside a directory's rectangle before
	// its children are laid out, leaving room for the directory outline.
	Padding float64
}

func (o Options) withDefaults() Options {
	if o.MinCell <= 0 {
		o.MinCell = 1
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}

// item is one participant in row packing: a child node or the pooled bucket.
type item struct {
	node        *model.Node
	area        float64
	pooled      bool
	pooledCount int
	pooledSize  int64
}

// frame is a pending directory interior awaiting layout.
type frame struct {
	node  *model.Node
	rect  Rect
	depth int
}

// Layout assigns a rectangle to every visible descendant of root within
// bounds. The tree must already be aggregated; it is only read. Parents
// precede their descendants in the returned slice. Zero-size nodes, and
// subtrees whose rectangle falls below Options.MinCell, produce no blocks.
func Layout(root *model.Node, bounds Rect, opts Options) []Block {
	opts = opts.withDefaults()
	if root == nil || root.TotalSize() <= 0 {
		return nil
	}
	if bounds.W < opts.MinCell || bounds.H < opts.MinCell {
		return nil
	}

	var blocks []Block
	// Explicit frame stack: recursion depth tracks filesystem depth, which
	// is untrusted input.
	stack := []frame{{node: root, rect: bounds}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		blocks = layoutFrame(f, opts, blocks, &stack)
	}
	return blocks
}

// layoutFrame packs one directory's children into rows inside f.rect using
// the squarified heuristic: grow the current row while the worst aspect
// ratio improves, close it one step before it degrades.
func layoutFrame(f frame, opts Options, blocks []Block, stack *[]frame) []Block {
	items := packItems(f.node, f.rect, opts)
	if len(items) == 0 {
		return blocks
	}

	rem := f.rect
	var row []item
	worst := math.Inf(1)

	i := 0
	for i < len(items) {
		short := math.Min(rem.W, rem.H)
		cand := worstRatio(append(row, items[i]), short)
		if cand > worst {
			// Appending would degrade the row: close it before this item.
			rem = placeRow(row, rem, f.depth+1, opts, &blocks, stack)
			row = row[:0]
			worst = math.Inf(1)
			continue
		}
		row = append(row, items[i])
		worst = cand
		i++
	}
	if len(row) > 0 {
		placeRow(row, rem, f.depth+1, opts, &blocks, stack)
	}
	return blocks
}

// packItems prepares a directory's children for row packing: a size-sorted
// copy with zero-size nodes dropped, sizes scaled to display areas, and
// sub-cell children merged into one pooled bucket. The bucket joins the
// packing like any other item if it is drawable itself, otherwise the
// pooled children simply stay invisible (their bytes still count toward the
// parent, which was aggregated before layout).
func packItems(n *model.Node, r Rect, opts Options) []item {
	if len(n.Children) == 0 {
		return nil
	}

	children := make([]*model.Node, len(n.Children))
	copy(children, n.Children)
	model.SortBySize(children)

	var total int64
	for _, c := range children {
		total += c.TotalSize()
	}
	if total <= 0 {
		return nil
	}

	scale := r.W * r.H / float64(total)
	minArea := opts.MinCell * opts.MinCell

	items := make([]item, 0, len(children))
	var pooledSize int64
	pooledCount := 0
	for _, c := range children {
		size := c.TotalSize()
		if size <= 0 {
			continue
		}
		area := float64(size) * scale
		if area < minArea {
			pooledSize += size
			pooledCount++
			continue
		}
		items = append(items, item{node: c, area: area})
	}

	if pooledCount > 0 {
		area := float64(pooledSize) * scale
		if area >= minArea {
			bucket := item{
				area:        area,
				pooled:      true,
				pooledCount: pooledCount,
				pooledSize:  pooledSize,
			}
			// Keep descending area order so the packing stays greedy
			// largest-first.
			pos := sort.Search(len(items), func(i int) bool {
				return items[i].area < area
			})
			items = append(items, item{})
			copy(items[pos+1:], items[pos:len(items)-1])
			items[pos] = bucket
		}
	}
	return items
}

// worstRatio is the squarified heuristic: for a row laid against a side of
// length short, the worst max(width/height, height/width) over its members.
func worstRatio(row []item, short float64) float64 {
	var sum float64
	for _, it := range row {
		sum += it.area
	}
	if sum <= 0 || short <= 0 {
		return math.Inf(1)
	}

	thickness := sum / short
	worst := 0.0
	for _, it := range row {
		length := it.area / thickness
		if length <= 0 {
			return math.Inf(1)
		}
		ratio := math.Max(thickness/length, length/thickness)
		if ratio > worst {
			worst = ratio
		}
	}
	return worst
}

// placeRow fixes a closed row into a strip of rem against its shorter side
// and returns the shrunken remainder. The strip always consumes its share
// of the rectangle; whether blocks are emitted depends on MinCell.
func placeRow(row []item, rem Rect, depth int, opts Options, blocks *[]Block, stack *[]frame) Rect {
	var sum float64
	for _, it := range row {
		sum += it.area
	}
	short := math.Min(rem.W, rem.H)
	if sum <= 0 || short <= 0 {
		return rem
	}
	thickness := sum / short
	drawable := thickness >= opts.MinCell

	if rem.W >= rem.H {
		// Vertical strip on the left edge, items stacked top to bottom.
		y := rem.Y
		for _, it := range row {
			length := it.area / thickness
			if drawable {
				emit(it, Rect{X: rem.X, Y: y, W: thickness, H: length}, depth, opts, blocks, stack)
			}
			y += length
		}
		rem.X += thickness
		rem.W -= thickness
	} else {
		// Horizontal strip on the top edge, items laid left to right.
		x := rem.X
		for _, it := range row {
			length := it.area / thickness
			if drawable {
				emit(it, Rect{X: x, Y: rem.Y, W: length, H: thickness}, depth, opts, blocks, stack)
			}
			x += length
		}
		rem.Y += thickness
		rem.H -= thickness
	}
	return rem
}

// emit records one block and queues a frame for directory interiors that
// still have room after the padding inset.
func emit(it item, r Rect, depth int, opts Options, blocks *[]Block, stack *[]frame) {
	if r.W < opts.MinCell || r.H < opts.MinCell {
		return
	}
	if it.pooled {
		*blocks = append(*blocks, Block{
			Rect:        r,
			Depth:       depth,
			Pooled:      true,
			PooledCount: it.pooledCount,
			PooledSize:  it.pooledSize,
		})
		return
	}

	*blocks = append(*blocks, Block{Node: it.node, Rect: r, Depth: depth})

	if it.node.IsDir && len(it.node.Children) > 0 {
		inner := r.Inset(opts.Padding)
		if inner.W >= opts.MinCell && inner.H >= opts.MinCell {
			*stack = append(*stack, frame{node: it.node, rect: inner, depth: depth})
		}
	}
}

// BlockAt returns the deepest block containing the point, or nil. Parents
// precede descendants in Layout output, so the last hit is the deepest.
func BlockAt(blocks []Block, x, y float64) *Block {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].Contains(x, y) {
			return &blocks[i]
		}
	}
	return nil
}
