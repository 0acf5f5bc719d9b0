package model

import "sort"

// SortBySize sorts nodes by total size descending, keeping the original
// order for equal sizes so layout output stays deterministic.
func SortBySize(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].TotalSize() > nodes[j].TotalSize()
	})
}

// SortTreeBySize applies SortBySize to every directory in the tree.
// Uses an explicit stack so arbitrarily deep trees are safe.
func SortTreeBySize(root *Node) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		SortBySize(n.Children)
		stack = append(stack, n.Children...)
	}
}
