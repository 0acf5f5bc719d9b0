package ui

import (
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#73F59F")
	ColorDanger  = lipgloss.Color("#F56565")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#3F3F46")
	ColorCyan    = lipgloss.Color("#00FFFF")

	ColorDir        = lipgloss.Color("#7DD3FC")
	ColorFile       = lipgloss.Color("#A1A1AA")
	ColorBackground = lipgloss.Color("#18181B")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F1F23")).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E4E4E7"))

	TreePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TreeItemSelected = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	TreeItemSelectedUnfocused = lipgloss.NewStyle().
					Background(lipgloss.Color("#3F3F46")).
					Foreground(lipgloss.Color("#E4E4E7"))

	InaccessibleStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	TreemapPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	InfoBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E4E4E7")).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

// categoryColors are fixed backgrounds for well-known extension groups so
// the same kind of file always looks the same across directories.
var categoryColors = map[string]lipgloss.Color{
	"image":   lipgloss.Color("#713F12"),
	"video":   lipgloss.Color("#7C2D12"),
	"audio":   lipgloss.Color("#78350F"),
	"archive": lipgloss.Color("#4C1D95"),
	"code":    lipgloss.Color("#14532D"),
	"doc":     lipgloss.Color("#1E3A8A"),
}

var extCategories = map[string]string{
	".png": "image", ".jpg": "image", ".jpeg": "image", ".gif": "image",
	".webp": "image", ".svg": "image", ".heic": "image",
	".mp4": "video", ".mkv": "video", ".mov": "video", ".avi": "video",
	".webm": "video",
	".mp3": "audio", ".flac": "audio", ".wav": "audio", ".ogg": "audio",
	".zip": "archive", ".tar": "archive", ".gz": "archive", ".xz": "archive",
	".7z": "archive", ".rar": "archive", ".dmg": "archive", ".iso": "archive",
	".go": "code", ".py": "code", ".rs": "code", ".js": "code", ".ts": "code",
	".c": "code", ".h": "code", ".cpp": "code", ".java": "code",
	".pdf": "doc", ".md": "doc", ".txt": "doc", ".doc": "doc", ".docx": "doc",
}

// fallbackPalette colors files with unrecognized extensions. The pick is
// hashed from the extension so rescans and resizes stay stable.
var fallbackPalette = []lipgloss.Color{
	lipgloss.Color("#27272A"),
	lipgloss.Color("#2D2D35"),
	lipgloss.Color("#333340"),
	lipgloss.Color("#2A3139"),
	lipgloss.Color("#31293B"),
	lipgloss.Color("#2C3630"),
}

// fileColor returns the tile background for a file name.
func fileColor(name string) lipgloss.Color {
	ext := strings.ToLower(filepath.Ext(name))
	if cat, ok := extCategories[ext]; ok {
		return categoryColors[cat]
	}
	idx := xxhash.Sum64String(ext) % uint64(len(fallbackPalette))
	return fallbackPalette[idx]
}
