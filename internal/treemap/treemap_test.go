package treemap

import (
	"math"
	"testing"

	"github.com/lumipallolabs/sizemap/internal/model"
)

func dir(name string, children ...*model.Node) *model.Node {
	d := &model.Node{Name: name, Path: "/" + name, IsDir: true, Children: children}
	for _, c := range children {
		c.Parent = d
	}
	return d
}

func file(name string, size int64) *model.Node {
	return &model.Node{Name: name, Path: "/" + name, Size: size}
}

func overlap(a, b Rect) bool {
	const eps = 1e-6
	return a.X+eps < b.X+b.W && b.X+eps < a.X+a.W &&
		a.Y+eps < b.Y+b.H && b.Y+eps < a.Y+a.H
}

func TestLayoutProportionalSplit(t *testing.T) {
	root := dir("root", file("big", 60), file("small", 40))
	model.Aggregate(root)

	blocks := Layout(root, Rect{W: 100, H: 50}, Options{})
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	// 100 > 50, so the split runs along the wide axis: widths 60 and 40,
	// both full height.
	big, small := blocks[0], blocks[1]
	if big.Node.Name != "big" {
		big, small = small, big
	}
	const eps = 1e-9
	if math.Abs(big.X) > eps || math.Abs(big.W-60) > eps || math.Abs(big.H-50) > eps {
		t.Errorf("big block = %+v, want x=0 w=60 h=50", big.Rect)
	}
	if math.Abs(small.X-60) > eps || math.Abs(small.W-40) > eps || math.Abs(small.H-50) > eps {
		t.Errorf("small block = %+v, want x=60 w=40 h=50", small.Rect)
	}
}

func TestLayoutSiblingsTileParent(t *testing.T) {
	root := dir("root",
		file("a", 5000), file("b", 3000), file("c", 1200), file("d", 800),
	)
	model.Aggregate(root)

	bounds := Rect{W: 100, H: 60}
	blocks := Layout(root, bounds, Options{})
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}

	var area float64
	for _, b := range blocks {
		area += b.W * b.H
	}
	want := bounds.W * bounds.H
	if math.Abs(area-want) > 1e-6 {
		t.Errorf("blocks cover area %v, want %v", area, want)
	}

	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if overlap(blocks[i].Rect, blocks[j].Rect) {
				t.Errorf("blocks %d and %d overlap: %+v vs %+v",
					i, j, blocks[i].Rect, blocks[j].Rect)
			}
		}
	}
}

func TestLayoutRecursesIntoDirectories(t *testing.T) {
	sub := dir("sub", file("x", 30), file("y", 30))
	root := dir("root", sub, file("f", 40))
	model.Aggregate(root)

	blocks := Layout(root, Rect{W: 100, H: 50}, Options{})

	byName := map[string]Block{}
	pos := map[string]int{}
	for i, b := range blocks {
		if b.Node != nil {
			byName[b.Node.Name] = b
			pos[b.Node.Name] = i
		}
	}
	for _, name := range []string{"sub", "f", "x", "y"} {
		if _, ok := byName[name]; !ok {
			t.Fatalf("missing block for %s", name)
		}
	}

	// The directory's own block comes before its children.
	if pos["sub"] > pos["x"] || pos["sub"] > pos["y"] {
		t.Error("directory block should precede its children")
	}

	// Children tile the directory's rectangle exactly (no padding).
	subRect := byName["sub"].Rect
	inner := byName["x"].W*byName["x"].H + byName["y"].W*byName["y"].H
	if math.Abs(inner-subRect.W*subRect.H) > 1e-6 {
		t.Errorf("children cover %v of directory area %v", inner, subRect.W*subRect.H)
	}
	for _, name := range []string{"x", "y"} {
		b := byName[name]
		if b.X < subRect.X-1e-9 || b.Y < subRect.Y-1e-9 ||
			b.X+b.W > subRect.X+subRect.W+1e-9 || b.Y+b.H > subRect.Y+subRect.H+1e-9 {
			t.Errorf("%s block %+v escapes directory rect %+v", name, b.Rect, subRect)
		}
	}
}

func TestLayoutPadding(t *testing.T) {
	sub := dir("sub", file("x", 50))
	root := dir("root", sub)
	model.Aggregate(root)

	blocks := Layout(root, Rect{W: 40, H: 40}, Options{Padding: 2})
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	outer, inner := blocks[0], blocks[1]
	if outer.Node != sub || inner.Node.Name != "x" {
		t.Fatalf("unexpected block order: %v, %v", outer.Node, inner.Node)
	}
	if inner.X != outer.X+2 || inner.Y != outer.Y+2 ||
		inner.W != outer.W-4 || inner.H != outer.H-4 {
		t.Errorf("inner block %+v not inset by 2 from %+v", inner.Rect, outer.Rect)
	}
}

func TestLayoutPoolsSmallItems(t *testing.T) {
	children := []*model.Node{file("big", 9900)}
	for i := 0; i < 50; i++ {
		children = append(children, file("tiny", 2))
	}
	root := dir("root", children...)
	model.Aggregate(root)

	// 1000 units wide, one unit tall: each tiny child would get 0.02 units.
	blocks := Layout(root, Rect{W: 1000, H: 1}, Options{})

	pooled := 0
	individualTiny := 0
	for _, b := range blocks {
		if b.Pooled {
			pooled++
			if b.PooledCount != 50 || b.PooledSize != 100 {
				t.Errorf("pooled block count=%d size=%d, want 50/100", b.PooledCount, b.PooledSize)
			}
			if math.Abs(b.W-10) > 1e-6 || math.Abs(b.H-1) > 1e-6 {
				t.Errorf("pooled block rect %+v, want 10x1", b.Rect)
			}
		} else if b.Node.Name == "tiny" {
			individualTiny++
		}
	}
	if pooled != 1 {
		t.Errorf("expected exactly 1 pooled block, got %d", pooled)
	}
	if individualTiny != 0 {
		t.Errorf("%d tiny children drawn individually, want 0", individualTiny)
	}
}

func TestLayoutDropsInvisiblePool(t *testing.T) {
	// The pooled bucket itself stays under one cell: nothing is drawn for
	// the small children, but the big child keeps its full-rect share.
	children := []*model.Node{file("big", 999990)}
	for i := 0; i < 5; i++ {
		children = append(children, file("tiny", 2))
	}
	root := dir("root", children...)
	model.Aggregate(root)

	blocks := Layout(root, Rect{W: 1000, H: 1}, Options{})
	for _, b := range blocks {
		if b.Pooled {
			t.Errorf("undrawable pool emitted: %+v", b)
		}
	}
}

func TestLayoutDegenerateInputs(t *testing.T) {
	if blocks := Layout(nil, Rect{W: 100, H: 100}, Options{}); blocks != nil {
		t.Errorf("nil root: got %d blocks", len(blocks))
	}

	empty := dir("empty")
	model.Aggregate(empty)
	if blocks := Layout(empty, Rect{W: 100, H: 100}, Options{}); blocks != nil {
		t.Errorf("zero-size root: got %d blocks", len(blocks))
	}

	root := dir("root", file("a", 10))
	model.Aggregate(root)
	if blocks := Layout(root, Rect{W: 0.5, H: 100}, Options{}); blocks != nil {
		t.Errorf("sub-cell rect: got %d blocks", len(blocks))
	}
}

func TestLayoutSkipsZeroSizeSiblings(t *testing.T) {
	root := dir("root", file("a", 100), file("zero", 0), dir("hollow"))
	model.Aggregate(root)

	blocks := Layout(root, Rect{W: 50, H: 50}, Options{})
	if len(blocks) != 1 || blocks[0].Node.Name != "a" {
		t.Fatalf("expected only the non-empty child, got %d blocks", len(blocks))
	}
	b := blocks[0]
	if math.Abs(b.W-50) > 1e-9 || math.Abs(b.H-50) > 1e-9 {
		t.Errorf("sole child should fill the rect, got %+v", b.Rect)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	sub := dir("sub", file("x", 120), file("y", 80), file("z", 80))
	root := dir("root", sub, file("a", 300), file("b", 120), file("c", 120))
	model.Aggregate(root)

	first := Layout(root, Rect{W: 163, H: 71}, Options{Padding: 1})
	second := Layout(root, Rect{W: 163, H: 71}, Options{Padding: 1})

	if len(first) != len(second) {
		t.Fatalf("block counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("block %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLayoutDeepChain(t *testing.T) {
	// A long single-child directory chain must not exhaust the stack.
	leaf := file("leaf", 64)
	n := dir("d", leaf)
	for i := 0; i < 10000; i++ {
		n = dir("d", n)
	}
	model.Aggregate(n)

	blocks := Layout(n, Rect{W: 20, H: 20}, Options{})
	if len(blocks) != 10001 {
		t.Fatalf("expected 10001 blocks, got %d", len(blocks))
	}
}

func TestBlockAt(t *testing.T) {
	sub := dir("sub", file("x", 30), file("y", 30))
	root := dir("root", sub, file("f", 40))
	model.Aggregate(root)

	blocks := Layout(root, Rect{W: 100, H: 50}, Options{})

	var xBlock Block
	for _, b := range blocks {
		if b.Node != nil && b.Node.Name == "x" {
			xBlock = b
		}
	}
	hit := BlockAt(blocks, xBlock.X+xBlock.W/2, xBlock.Y+xBlock.H/2)
	if hit == nil || hit.Node == nil || hit.Node.Name != "x" {
		t.Fatalf("expected deepest block 'x', got %+v", hit)
	}

	if BlockAt(blocks, -5, -5) != nil {
		t.Error("point outside bounds should miss")
	}
}
