package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/sizemap/internal/model"
)

const headerProgressBarWidth = 20 // Width of volume usage progress bar

// Header shows the scan target, the live scan counters and the capacity
// of the volume the target lives on.
type Header struct {
	path         string
	volume       model.Volume
	width        int
	scanning     bool
	scanProgress string
	total        int64
}

// NewHeader creates a new header component
func NewHeader(path string, volume model.Volume) Header {
	return Header{path: path, volume: volume}
}

// SetScanning sets the scanning state
func (h *Header) SetScanning(scanning bool, progress string) {
	h.scanning = scanning
	h.scanProgress = progress
}

// SetTotal sets the aggregated size of the scanned tree
func (h *Header) SetTotal(total int64) {
	h.total = total
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
func (h Header) View() string {
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")).
		Bold(true).
		Render("SIZEMAP")

	pathLabel := lipgloss.NewStyle().Foreground(ColorDir).Render(h.path)

	// Scanned total in the middle once the tree is in.
	var totalStats string
	if h.total > 0 && !h.scanning {
		label := lipgloss.NewStyle().Foreground(ColorMuted).Render("Scanned: ")
		value := lipgloss.NewStyle().Foreground(ColorSuccess).Render(model.FormatSize(h.total))
		totalStats = label + value
	}

	// Volume usage on the right, hidden while scanning since the center
	// panel already shows live counters.
	var stats, statsCompact string
	if !h.scanning && h.volume.TotalBytes > 0 {
		usedPct := h.volume.UsedPercent()
		barWidth := headerProgressBarWidth
		filled := int(usedPct / 100 * float64(barWidth))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		stats = StatsStyle.Render(fmt.Sprintf(
			"Volume: %s / %s  [%s] %.0f%%",
			model.FormatSize(h.volume.UsedBytes()),
			model.FormatSize(h.volume.TotalBytes),
			bar,
			usedPct,
		))
		statsCompact = StatsStyle.Render(fmt.Sprintf(
			"Volume: %s / %s",
			model.FormatSize(h.volume.UsedBytes()),
			model.FormatSize(h.volume.TotalBytes),
		))
	}

	appNameWidth := lipgloss.Width(appName)
	pathWidth := lipgloss.Width(pathLabel)
	totalWidth := lipgloss.Width(totalStats)
	statsWidth := lipgloss.Width(stats)

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")
	sepWidth := lipgloss.Width(sep)

	totalContent := appNameWidth + sepWidth + pathWidth + totalWidth + statsWidth + 4

	// For narrow terminals, progressively hide elements.
	if h.width < totalContent && statsCompact != "" {
		stats = statsCompact
		statsWidth = lipgloss.Width(stats)
		totalContent = appNameWidth + sepWidth + pathWidth + totalWidth + statsWidth + 4
	}
	if h.width < totalContent && totalWidth > 0 {
		totalStats = ""
		totalWidth = 0
		totalContent = appNameWidth + sepWidth + pathWidth + statsWidth + 2
	}
	if h.width < totalContent && statsWidth > 0 {
		stats = ""
		totalContent = appNameWidth + sepWidth + pathWidth
	}

	remainingSpace := h.width - totalContent
	if remainingSpace < 2 {
		remainingSpace = 2
	}
	leftGap := remainingSpace / 2
	rightGap := remainingSpace - leftGap

	line := appName + sep + pathLabel +
		strings.Repeat(" ", leftGap) + totalStats +
		strings.Repeat(" ", rightGap) + stats

	return HeaderStyle.MaxHeight(1).Render(line)
}
