package ui

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lumipallolabs/sizemap/internal/model"
)

// fileType detects a file's type from its magic numbers.
func fileType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	ext := mtype.Extension()
	if ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return ""
}

// InfoBar renders a one-line summary of the selected node. ftype is the
// detected file type, computed once on selection change rather than per
// frame.
func InfoBar(node *model.Node, ftype string, width int) string {
	if node == nil {
		return InfoBarStyle.Width(width).Render("")
	}

	parts := []string{
		boldText(node.Name),
		model.FormatSize(node.Size),
		fmt.Sprintf("%.1f%% of total", node.Percent),
	}
	if node.IsDir {
		parts = append(parts, fmt.Sprintf("%d entries", len(node.Children)))
	} else if ftype != "" {
		parts = append(parts, ftype)
	}
	if node.Inaccessible {
		parts = append(parts, InaccessibleStyle.Render("inaccessible"))
	}

	line := strings.Join(parts, HelpStyle.Render(" · "))
	return InfoBarStyle.Width(width).MaxHeight(1).Render(line)
}

func boldText(s string) string {
	return StatsStyle.Bold(true).Render(s)
}
