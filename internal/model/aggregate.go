package model

// Aggregate computes directory sizes bottom-up and fills in each node's
// Percent relative to the root total. It walks with an explicit stack so
// pathologically deep trees cannot exhaust the call stack, and it always
// recomputes directory sizes from the current children, so running it again
// on an already-aggregated tree is a no-op.
func Aggregate(root *Node) int64 {
	if root == nil {
		return 0
	}

	// Post-order: collect nodes in pre-order, then sum in reverse so every
	// directory is visited after all of its children.
	order := make([]*Node, 0, 256)
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, n)
		stack = append(stack, n.Children...)
	}

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if !n.IsDir {
			continue
		}
		var total int64
		for _, c := range n.Children {
			total += c.Size
		}
		n.Size = total
	}

	total := root.Size
	for _, n := range order {
		if total > 0 {
			n.Percent = float64(n.Size) / float64(total) * 100
		} else {
			n.Percent = 0
		}
	}

	return total
}
