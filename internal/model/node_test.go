package model

import "testing"

func TestSortBySize(t *testing.T) {
	nodes := []*Node{
		{Name: "small", Size: 100},
		{Name: "large", Size: 1000},
		{Name: "medium", Size: 500},
	}

	SortBySize(nodes)

	if nodes[0].Name != "large" {
		t.Errorf("expected 'large' first, got %s", nodes[0].Name)
	}
	if nodes[2].Name != "small" {
		t.Errorf("expected 'small' last, got %s", nodes[2].Name)
	}
}

func TestSortBySizeStableTies(t *testing.T) {
	nodes := []*Node{
		{Name: "a", Size: 100},
		{Name: "b", Size: 100},
		{Name: "c", Size: 100},
	}

	SortBySize(nodes)

	for i, want := range []string{"a", "b", "c"} {
		if nodes[i].Name != want {
			t.Errorf("tie order not preserved at %d: got %s, want %s", i, nodes[i].Name, want)
		}
	}
}

func TestNodeRoot(t *testing.T) {
	root := &Node{Name: "root", IsDir: true}
	mid := &Node{Name: "mid", IsDir: true, Parent: root}
	leaf := &Node{Name: "leaf", Parent: mid}

	if leaf.Root() != root {
		t.Error("Root should walk back to the tree root")
	}
	if !root.IsRoot() || leaf.IsRoot() {
		t.Error("IsRoot mismatch")
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{5 * 1024 * 1024, "5.0MB"},
		{3 * 1024 * 1024 * 1024, "3.0GB"},
	}
	for _, c := range cases {
		if got := FormatSize(c.in); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
