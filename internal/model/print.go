package model

import (
	"fmt"
	"io"
)

// WriteTree prints an indented tree of n to w, one line per node, annotated
// with size and percentage of the root total. With dirsOnly set, file leaves
// are omitted. The tree should be aggregated first so sizes and percentages
// are populated.
func WriteTree(w io.Writer, n *Node, dirsOnly bool) error {
	if n == nil {
		return nil
	}
	return writeNode(w, n, "", true, dirsOnly)
}

func writeNode(w io.Writer, n *Node, indent string, last bool, dirsOnly bool) error {
	if dirsOnly && !n.IsDir {
		return nil
	}

	prefix := "├── "
	if last {
		prefix = "└── "
	}

	label := n.Name
	if n.Inaccessible {
		label += " (inaccessible)"
	}
	if _, err := fmt.Fprintf(w, "%s%s%s [%s] (%.1f%%)\n",
		indent, prefix, label, FormatSize(n.Size), n.Percent); err != nil {
		return err
	}

	childIndent := indent + "│   "
	if last {
		childIndent = indent + "    "
	}

	children := n.Children
	if dirsOnly {
		children = children[:0:0]
		for _, c := range n.Children {
			if c.IsDir {
				children = append(children, c)
			}
		}
	}
	for i, c := range children {
		if err := writeNode(w, c, childIndent, i == len(children)-1, dirsOnly); err != nil {
			return err
		}
	}
	return nil
}
