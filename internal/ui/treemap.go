package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/sizemap/internal/model"
	"github.com/lumipallolabs/sizemap/internal/treemap"
)

// cellBlock is an engine rectangle snapped to terminal cells.
type cellBlock struct {
	src        treemap.Block
	x, y, w, h int
}

// TreemapPanel renders one directory level of the squarified layout as
// bordered tiles. Enter zooms into the selected directory, backspace
// zooms back out; the engine recomputes geometry on every change.
type TreemapPanel struct {
	root     *model.Node
	focus    *model.Node
	selected *model.Node
	opts     treemap.Options
	blocks   []cellBlock
	width    int
	height   int
	focused  bool
}

// NewTreemapPanel creates a new treemap panel
func NewTreemapPanel(opts treemap.Options) TreemapPanel {
	return TreemapPanel{opts: opts}
}

// SetRoot sets the root node
func (t *TreemapPanel) SetRoot(root *model.Node) {
	t.root = root
	t.focus = root
	t.selected = root
	t.layout()
}

// SetSize sets the panel dimensions
func (t *TreemapPanel) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.layout()
}

// SetFocused sets focus state
func (t *TreemapPanel) SetFocused(focused bool) {
	t.focused = focused
}

// SetSelected sets the selected node (for sync from tree)
func (t *TreemapPanel) SetSelected(node *model.Node) {
	if node == nil {
		return
	}
	t.selected = node
}

// SetFocus re-centers the treemap on a directory
func (t *TreemapPanel) SetFocus(node *model.Node) {
	if node == nil || node == t.focus {
		return
	}
	t.focus = node
	t.layout()
}

// Selected returns the currently selected node
func (t TreemapPanel) Selected() *model.Node {
	return t.selected
}

// SelectFirst selects the largest visible block
func (t *TreemapPanel) SelectFirst() {
	for _, b := range t.blocks {
		if b.src.Node != nil {
			t.selected = b.src.Node
			return
		}
	}
}

// ZoomIn focuses on the selected folder
func (t *TreemapPanel) ZoomIn() {
	if t.selected != nil && t.selected.IsDir && len(t.selected.Children) > 0 {
		t.focus = t.selected
		t.layout()
	}
}

// ZoomOut goes to parent folder
func (t *TreemapPanel) ZoomOut() {
	if t.focus != nil && t.focus.Parent != nil {
		t.focus = t.focus.Parent
		t.layout()
		t.selected = t.focus
	}
}

// SelectAt selects the block containing the panel-relative cell, if any.
// Coordinates are relative to the panel's top-left corner including its
// border.
func (t *TreemapPanel) SelectAt(px, py int) *model.Node {
	// Shift into content-area coordinates.
	cx := px - 2
	cy := py - 1
	for i := range t.blocks {
		b := &t.blocks[i]
		if cx >= b.x && cx < b.x+b.w && cy >= b.y && cy < b.y+b.h && b.src.Node != nil {
			t.selected = b.src.Node
			return t.selected
		}
	}
	return nil
}

// MoveToBlock moves selection to an adjacent block
func (t *TreemapPanel) MoveToBlock(dx, dy int) {
	if len(t.blocks) == 0 || t.selected == nil {
		return
	}

	var current *cellBlock
	for i := range t.blocks {
		if t.blocks[i].src.Node == t.selected {
			current = &t.blocks[i]
			break
		}
	}
	if current == nil {
		t.SelectFirst()
		return
	}

	cx := current.x + current.w/2
	cy := current.y + current.h/2

	var best *cellBlock
	bestDist := -1
	for i := range t.blocks {
		b := &t.blocks[i]
		if b.src.Node == nil || b.src.Node == t.selected {
			continue
		}
		bx := b.x + b.w/2
		by := b.y + b.h/2
		if dx > 0 && bx <= cx {
			continue
		}
		if dx < 0 && bx >= cx {
			continue
		}
		if dy > 0 && by <= cy {
			continue
		}
		if dy < 0 && by >= cy {
			continue
		}
		dist := abs(bx-cx) + abs(by-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = b
		}
	}
	if best != nil {
		t.selected = best.src.Node
	}
}

func (t TreemapPanel) contentSize() (int, int) {
	w := t.width - 4
	h := t.height - 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// layout runs the engine over the focused directory and snaps the
// resulting rectangles to the cell grid.
func (t *TreemapPanel) layout() {
	t.blocks = nil
	if t.focus == nil {
		return
	}

	contentW, contentH := t.contentSize()
	engineBlocks := treemap.Layout(t.focus, treemap.Rect{
		W: float64(contentW),
		H: float64(contentH),
	}, t.opts)

	for _, b := range engineBlocks {
		// One level at a time; deeper levels are reached by zooming.
		if b.Depth != 1 {
			continue
		}
		x0 := int(b.X + 0.5)
		y0 := int(b.Y + 0.5)
		x1 := int(b.X + b.W + 0.5)
		y1 := int(b.Y + b.H + 0.5)
		if x1 > contentW {
			x1 = contentW
		}
		if y1 > contentH {
			y1 = contentH
		}
		if x1-x0 < 1 || y1-y0 < 1 {
			continue
		}
		t.blocks = append(t.blocks, cellBlock{src: b, x: x0, y: y0, w: x1 - x0, h: y1 - y0})
	}

	// Single file or empty directory: show the focus as one block.
	if len(t.blocks) == 0 {
		t.blocks = append(t.blocks, cellBlock{
			src: treemap.Block{Node: t.focus},
			w:   contentW, h: contentH,
		})
	}

	// Keep the selection inside the new view.
	if t.selected == nil || (t.selected != t.focus && t.selected.Parent != t.focus) {
		t.selected = t.focus
	}
}

// View renders the treemap
func (t TreemapPanel) View() string {
	if t.focus == nil {
		return TreemapPanelStyle.Width(t.width).Height(t.height).Render("No data")
	}

	contentW, contentH := t.contentSize()

	grid := make([][]rune, contentH)
	colors := make([][]lipgloss.Style, contentH)
	for i := range grid {
		grid[i] = make([]rune, contentW)
		colors[i] = make([]lipgloss.Style, contentW)
		for j := range grid[i] {
			grid[i][j] = ' '
			colors[i][j] = lipgloss.NewStyle()
		}
	}

	for _, block := range t.blocks {
		t.drawBlock(grid, colors, block, contentW, contentH)
	}

	var lines []string
	for y := 0; y < contentH; y++ {
		var line strings.Builder
		for x := 0; x < contentW; x++ {
			line.WriteString(colors[y][x].Render(string(grid[y][x])))
		}
		lines = append(lines, line.String())
	}
	content := strings.Join(lines, "\n")

	style := TreemapPanelStyle.Width(t.width).Height(t.height)
	if t.focused {
		style = style.BorderForeground(ColorPrimary)
	}
	return style.Render(content)
}

// blockLabel returns the one-line name and size for a block.
func blockLabel(b treemap.Block) (string, string) {
	if b.Pooled {
		return fmt.Sprintf("%d small", b.PooledCount), model.FormatSize(b.PooledSize)
	}
	name := b.Node.Name
	if b.Node.Inaccessible {
		name += " !"
	}
	return name, model.FormatSize(b.Node.Size)
}

// drawBlock draws a single block onto the grid
func (t TreemapPanel) drawBlock(grid [][]rune, colors [][]lipgloss.Style, block cellBlock, gridW, gridH int) {
	if block.w < 1 || block.h < 1 {
		return
	}

	var bgColor, fgColor lipgloss.Color
	switch {
	case block.src.Pooled:
		bgColor = lipgloss.Color("#3F3F46")
		fgColor = lipgloss.Color("#9CA3AF")
	case block.src.Node.Inaccessible:
		bgColor = lipgloss.Color("#450A0A")
		fgColor = ColorDanger
	case block.src.Node.IsDir:
		bgColor = lipgloss.Color("#1E3A5F")
		fgColor = ColorDir
	default:
		bgColor = fileColor(block.src.Node.Name)
		fgColor = lipgloss.Color("#E4E4E7")
	}

	isSelected := block.src.Node != nil && block.src.Node == t.selected && t.focused

	blockStyle := lipgloss.NewStyle().Background(bgColor).Foreground(fgColor)
	if isSelected {
		blockStyle = blockStyle.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}

	for y := block.y; y < block.y+block.h && y < gridH; y++ {
		for x := block.x; x < block.x+block.w && x < gridW; x++ {
			if y >= 0 && x >= 0 {
				grid[y][x] = ' '
				colors[y][x] = blockStyle
			}
		}
	}

	t.drawBorder(grid, colors, block, gridW, gridH, bgColor, isSelected)

	// Label if space permits.
	if block.w > 4 && block.h > 2 {
		name, size := blockLabel(block.src)
		maxLen := block.w - 4
		// Truncate on runes so a multi-byte name never splits mid-character.
		label := []rune(name)
		if len(label) > maxLen {
			label = label[:maxLen]
		}

		labelY := block.y + 1
		labelX := block.x + 2
		if labelY < gridH && labelX < gridW && maxLen > 0 {
			for i, ch := range label {
				x := labelX + i
				if x < gridW && x < block.x+block.w-2 {
					grid[labelY][x] = ch
					colors[labelY][x] = blockStyle
				}
			}
		}

		if block.h > 3 && block.w > 6 {
			sizeY := block.y + 2
			sizeX := block.x + 2
			if sizeY < gridH {
				for i, ch := range size {
					x := sizeX + i
					if x < gridW && x < block.x+block.w-2 {
						grid[sizeY][x] = ch
						colors[sizeY][x] = blockStyle
					}
				}
			}
		}
	}
}

func (t TreemapPanel) drawBorder(grid [][]rune, colors [][]lipgloss.Style, block cellBlock, gridW, gridH int, bgColor lipgloss.Color, isSelected bool) {
	if block.w < 2 || block.h < 2 {
		return
	}

	borderStyle := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color("#4B5563"))
	if isSelected {
		borderStyle = borderStyle.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF"))
	}

	x0, y0 := block.x, block.y
	x1, y1 := block.x+block.w-1, block.y+block.h-1

	for x := x0; x <= x1 && x < gridW; x++ {
		if x < 0 {
			continue
		}
		if y0 >= 0 && y0 < gridH {
			grid[y0][x] = '─'
			colors[y0][x] = borderStyle
		}
		if y1 >= 0 && y1 < gridH {
			grid[y1][x] = '─'
			colors[y1][x] = borderStyle
		}
	}
	for y := y0; y <= y1 && y < gridH; y++ {
		if y < 0 {
			continue
		}
		if x0 >= 0 && x0 < gridW {
			grid[y][x0] = '│'
			colors[y][x0] = borderStyle
		}
		if x1 >= 0 && x1 < gridW {
			grid[y][x1] = '│'
			colors[y][x1] = borderStyle
		}
	}

	corner := func(y, x int, ch rune) {
		if y >= 0 && y < gridH && x >= 0 && x < gridW {
			grid[y][x] = ch
			colors[y][x] = borderStyle
		}
	}
	corner(y0, x0, '┌')
	corner(y0, x1, '┐')
	corner(y1, x0, '└')
	corner(y1, x1, '┘')
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
