package model

// Node represents a file or directory in the scanned tree
type Node struct {
	Path     string
	Name     string
	Size     int64 // bytes: stat size for files, sum of children after Aggregate
	IsDir    bool
	Children []*Node
	Parent   *Node // back reference for upward walks, nil on the root

	// Inaccessible marks entries whose listing or stat failed. They stay in
	// the tree with size 0 so they remain visible and findable.
	Inaccessible bool

	// Percent is this node's share of the root total in [0,100].
	// Zero until Aggregate runs, and zero when the whole tree holds no bytes.
	Percent float64
}

// TotalSize returns the cached total size (call Aggregate first for dirs)
func (n *Node) TotalSize() int64 {
	return n.Size
}

// Root walks the parent chain up to the tree root.
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}
