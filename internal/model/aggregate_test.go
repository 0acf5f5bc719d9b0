package model

import "testing"

func buildTestTree() *Node {
	root := &Node{Name: "root", Path: "/root", IsDir: true}
	sub := &Node{Name: "sub", Path: "/root/sub", IsDir: true, Parent: root}
	sub.Children = []*Node{
		{Name: "a.bin", Path: "/root/sub/a.bin", Size: 300, Parent: sub},
		{Name: "b.bin", Path: "/root/sub/b.bin", Size: 100, Parent: sub},
	}
	root.Children = []*Node{
		sub,
		{Name: "c.txt", Path: "/root/c.txt", Size: 600, Parent: root},
	}
	return root
}

func TestAggregateSums(t *testing.T) {
	root := buildTestTree()

	total := Aggregate(root)
	if total != 1000 {
		t.Fatalf("expected total 1000, got %d", total)
	}
	if root.Size != 1000 {
		t.Errorf("root size = %d, want 1000", root.Size)
	}
	if sub := root.Children[0]; sub.Size != 400 {
		t.Errorf("sub size = %d, want 400", sub.Size)
	}

	// Every directory equals the sum of its children.
	var check func(n *Node)
	check = func(n *Node) {
		if n.IsDir {
			var sum int64
			for _, c := range n.Children {
				sum += c.Size
			}
			if n.Size != sum {
				t.Errorf("%s: size %d != children sum %d", n.Path, n.Size, sum)
			}
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(root)
}

func TestAggregatePercentages(t *testing.T) {
	root := buildTestTree()
	Aggregate(root)

	if root.Percent != 100 {
		t.Errorf("root percent = %v, want 100", root.Percent)
	}
	if got := root.Children[0].Percent; got != 40 {
		t.Errorf("sub percent = %v, want 40", got)
	}
	if got := root.Children[1].Percent; got != 60 {
		t.Errorf("c.txt percent = %v, want 60", got)
	}

	var check func(n *Node)
	check = func(n *Node) {
		if n.Percent < 0 || n.Percent > 100 {
			t.Errorf("%s: percent %v out of [0,100]", n.Path, n.Percent)
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(root)
}

func TestAggregateIdempotent(t *testing.T) {
	root := buildTestTree()
	first := Aggregate(root)
	second := Aggregate(root)

	if first != second {
		t.Fatalf("totals differ across runs: %d then %d", first, second)
	}
	if root.Size != 1000 || root.Children[0].Size != 400 {
		t.Errorf("re-aggregation changed sizes: root=%d sub=%d", root.Size, root.Children[0].Size)
	}
	if root.Percent != 100 {
		t.Errorf("re-aggregation changed root percent: %v", root.Percent)
	}
}

func TestAggregateEmptyTree(t *testing.T) {
	root := &Node{Name: "empty", IsDir: true}
	root.Children = []*Node{
		{Name: "hollow", IsDir: true, Parent: root},
		{Name: "zero.txt", Size: 0, Parent: root},
	}

	if total := Aggregate(root); total != 0 {
		t.Fatalf("expected total 0, got %d", total)
	}
	if root.Percent != 0 {
		t.Errorf("empty root percent = %v, want 0", root.Percent)
	}
	for _, c := range root.Children {
		if c.Percent != 0 {
			t.Errorf("%s: percent = %v, want 0 for empty tree", c.Name, c.Percent)
		}
	}
}

func TestAggregateDeepTree(t *testing.T) {
	// Deep chain that would blow an unguarded recursive walk.
	root := &Node{Name: "d0", IsDir: true}
	cur := root
	const depth = 200000
	for i := 0; i < depth; i++ {
		child := &Node{Name: "d", IsDir: true, Parent: cur}
		cur.Children = []*Node{child}
		cur = child
	}
	cur.Children = []*Node{{Name: "leaf", Size: 42, Parent: cur}}

	if total := Aggregate(root); total != 42 {
		t.Fatalf("expected total 42, got %d", total)
	}
	if root.Size != 42 || root.Percent != 100 {
		t.Errorf("root size=%d percent=%v", root.Size, root.Percent)
	}
}

func TestAggregateInaccessibleSibling(t *testing.T) {
	root := &Node{Name: "root", IsDir: true}
	root.Children = []*Node{
		{Name: "locked", IsDir: true, Inaccessible: true, Parent: root},
		{Name: "a", Size: 10, Parent: root},
		{Name: "b", Size: 20, Parent: root},
	}

	if total := Aggregate(root); total != 30 {
		t.Fatalf("expected total 30, got %d", total)
	}
}
