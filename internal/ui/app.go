package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/sizemap/internal/config"
	"github.com/lumipallolabs/sizemap/internal/core"
	"github.com/lumipallolabs/sizemap/internal/logging"
	"github.com/lumipallolabs/sizemap/internal/model"
	"github.com/lumipallolabs/sizemap/internal/treemap"
)

// Panel identifies which panel is active
type Panel int

const (
	PanelTree Panel = iota
	PanelTreemap
)

// scanStartMsg triggers the actual scan start (after UI has rendered)
type scanStartMsg struct{}

// ctrlEventMsg carries one controller event plus the channel to keep
// listening on
type ctrlEventMsg struct {
	event core.Event
	ch    <-chan core.Event
}

// scanEventsDoneMsg is sent when the controller closes its event channel
type scanEventsDoneMsg struct{}

// focusDebounceMsg triggers a debounced treemap focus update
type focusDebounceMsg struct {
	version int
	node    *model.Node
}

// spinnerTickMsg triggers spinner animation
type spinnerTickMsg struct{}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Timing constants
const (
	spinnerTickInterval  = 80 * time.Millisecond
	dotAnimationSpeed    = 400 // milliseconds per frame
	focusDebounceTimeout = 300 * time.Millisecond
)

// scanPhases are the pipeline stages shown in the boot-style log.
var scanPhases = []core.Phase{core.PhaseScanning, core.PhaseAggregating}

// App is the main application model
type App struct {
	ctrl *core.Controller

	// Components
	header  Header
	tree    TreePanel
	treemap TreemapPanel
	help    HelpOverlay

	keys KeyMap

	// Data
	root *model.Node

	// UI state
	activePanel    Panel
	scanning       bool
	scanPhase      core.Phase
	scanFileCount  string
	scanBytesFound string
	err            error
	selectedType   string
	focusVersion   int // incremented on each selection, used for debouncing

	cancelScan context.CancelFunc

	// Dimensions
	width     int
	height    int
	treeWidth int
}

// NewApp creates the application model around a scan controller.
func NewApp(ctrl *core.Controller, layout config.Layout) App {
	app := App{
		ctrl:   ctrl,
		header: NewHeader(ctrl.Path(), ctrl.Volume()),
		tree:   NewTreePanel(),
		treemap: NewTreemapPanel(treemap.Options{
			MinCell: layout.MinCell,
			Padding: layout.Padding,
		}),
		help:        NewHelpOverlay(),
		keys:        DefaultKeyMap(),
		activePanel: PanelTree,
		scanning:    true,
	}

	app.tree.SetFocused(true)
	app.treemap.SetFocused(false)
	app.header.SetScanning(true, "")
	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	titleCmd := tea.SetWindowTitle("SIZEMAP")
	return tea.Batch(titleCmd, func() tea.Msg {
		return scanStartMsg{}
	})
}

// listenEvents waits for the next controller event.
func listenEvents(ch <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return scanEventsDoneMsg{}
		}
		return ctrlEventMsg{event: ev, ch: ch}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Geometry is a pure function of the tree and the viewport, so a
		// resize only re-runs layout; the scan result is untouched.
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case scanStartMsg:
		ctx, cancel := context.WithCancel(context.Background())
		a.cancelScan = cancel
		a.scanning = true
		a.scanPhase = core.PhaseScanning
		a.scanFileCount = ""
		a.scanBytesFound = ""
		a.err = nil
		a.root = nil
		a.tree.SetRoot(nil)
		a.treemap.SetRoot(nil)
		a.header.SetScanning(true, "")
		ch := a.ctrl.StartScan(ctx)
		return a, tea.Batch(listenEvents(ch), spinnerTick())

	case ctrlEventMsg:
		a = a.handleControllerEvent(msg.event)
		return a, listenEvents(msg.ch)

	case scanEventsDoneMsg:
		return a, nil

	case focusDebounceMsg:
		// Only apply focus if this is still the latest version (user
		// stopped scrolling).
		if msg.version == a.focusVersion && msg.node != nil {
			a.treemap.SetFocus(msg.node)
		}
		return a, nil

	case spinnerTickMsg:
		// Gate on scanning alone: a failed scan leaves root nil and must
		// not keep the tick loop alive.
		if a.scanning {
			return a, spinnerTick()
		}
		return a, nil
	}

	return a, nil
}

// handleControllerEvent folds one pipeline event into the model.
func (a App) handleControllerEvent(ev core.Event) App {
	switch ev := ev.(type) {
	case core.ScanProgressEvent:
		a.scanFileCount = fmt.Sprintf("%d files", ev.FilesScanned)
		a.scanBytesFound = model.FormatSize(ev.BytesFound)
		a.header.SetScanning(true, fmt.Sprintf("%s, %s", a.scanFileCount, a.scanBytesFound))

	case core.PhaseChangedEvent:
		a.scanPhase = ev.Phase

	case core.ScanCompletedEvent:
		if ev.Root == nil {
			a.scanning = false
			a.err = ev.Err
			a.header.SetScanning(false, "")
			logging.Debug.Debug("scan failed", "err", ev.Err)
			return a
		}
		// A cancelled scan still yields a valid partial tree.
		a.scanning = false
		a.root = ev.Root
		a.err = ev.Err
		a.tree.SetRoot(ev.Root)
		a.treemap.SetRoot(ev.Root)
		a.header.SetScanning(false, "")
		a.header.SetTotal(ev.Total)
		a.ctrl.FinalizeScan()
		a.updateLayout()

	case core.ErrorEvent:
		a.err = ev.Err
	}
	return a
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence.
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Back) {
			a.help.SetVisible(false)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.cancelScan != nil {
			a.cancelScan()
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Tab):
		if a.activePanel == PanelTree {
			a.activePanel = PanelTreemap
			a.tree.SetFocused(false)
			a.treemap.SetFocused(true)
			a.treemap.SelectFirst()
			a.syncSelectionFromTreemap()
		} else {
			a.activePanel = PanelTree
			a.tree.SetFocused(true)
			a.treemap.SetFocused(false)
			return a, a.syncSelection()
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		if a.activePanel == PanelTree {
			a.tree.MoveUp()
			return a, a.syncSelection()
		}
		a.treemap.MoveToBlock(0, -1)
		a.syncSelectionFromTreemap()
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.activePanel == PanelTree {
			a.tree.MoveDown()
			return a, a.syncSelection()
		}
		a.treemap.MoveToBlock(0, 1)
		a.syncSelectionFromTreemap()
		return a, nil

	case key.Matches(msg, a.keys.Left):
		if a.activePanel == PanelTree {
			a.tree.Collapse()
			a.updateLayout()
		} else {
			a.treemap.MoveToBlock(-1, 0)
			a.syncSelectionFromTreemap()
		}
		return a, nil

	case key.Matches(msg, a.keys.Right):
		if a.activePanel == PanelTree {
			a.tree.Expand()
			a.updateLayout()
		} else {
			a.treemap.MoveToBlock(1, 0)
			a.syncSelectionFromTreemap()
		}
		return a, nil

	case key.Matches(msg, a.keys.Top):
		if a.activePanel == PanelTree {
			a.tree.GoToTop()
			return a, a.syncSelection()
		}
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		if a.activePanel == PanelTree {
			a.tree.GoToBottom()
			return a, a.syncSelection()
		}
		return a, nil

	case key.Matches(msg, a.keys.PageUp):
		if a.activePanel == PanelTree {
			a.tree.PageUp()
			return a, a.syncSelection()
		}
		return a, nil

	case key.Matches(msg, a.keys.PageDown):
		if a.activePanel == PanelTree {
			a.tree.PageDown()
			return a, a.syncSelection()
		}
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		if a.activePanel == PanelTreemap {
			a.treemap.ZoomIn()
			if node := a.treemap.Selected(); node != nil {
				a.tree.ExpandTo(node)
				a.updateLayout()
			}
		} else {
			a.tree.Toggle()
			a.updateLayout()
			return a, a.syncSelection()
		}
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.activePanel == PanelTreemap {
			a.treemap.ZoomOut()
			a.syncSelectionFromTreemap()
		} else {
			a.tree.Collapse()
			a.updateLayout()
		}
		return a, nil

	case key.Matches(msg, a.keys.Rescan):
		if !a.scanning {
			return a, func() tea.Msg { return scanStartMsg{} }
		}
		return a, nil

	case key.Matches(msg, a.keys.OpenExplorer):
		return a, a.openInExplorer()
	}

	return a, nil
}

// handleMouse selects treemap blocks on click.
func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}
	if a.root == nil || a.scanning {
		return a, nil
	}

	// Treemap panel starts right of the tree, below the header line.
	px := msg.X - a.treeWidth
	py := msg.Y - 1
	if px < 0 || py < 0 {
		return a, nil
	}
	if node := a.treemap.SelectAt(px, py); node != nil {
		a.activePanel = PanelTreemap
		a.tree.SetFocused(false)
		a.treemap.SetFocused(true)
		a.syncSelectionFromTreemap()
	}
	return a, nil
}

// syncSelection syncs the tree selection to the treemap
func (a *App) syncSelection() tea.Cmd {
	node := a.tree.Selected()
	if node == nil {
		return nil
	}
	a.treemap.SetSelected(node)
	a.updateSelectedType(node)

	// Re-focusing the treemap re-runs layout, so debounce it while the
	// user scrolls through the tree.
	if node.IsDir && len(node.Children) > 0 {
		a.focusVersion++
		version := a.focusVersion
		return tea.Tick(focusDebounceTimeout, func(time.Time) tea.Msg {
			return focusDebounceMsg{version: version, node: node}
		})
	}
	return nil
}

// syncSelectionFromTreemap syncs treemap selection back to the info bar.
// The tree is left alone so block navigation doesn't churn its expansion.
func (a *App) syncSelectionFromTreemap() {
	a.updateSelectedType(a.treemap.Selected())
}

func (a *App) updateSelectedType(node *model.Node) {
	a.selectedType = ""
	if node != nil && !node.IsDir && !node.Inaccessible {
		a.selectedType = fileType(node.Path)
	}
}

// selected returns the node the info bar should describe.
func (a App) selected() *model.Node {
	if a.activePanel == PanelTreemap {
		return a.treemap.Selected()
	}
	return a.tree.Selected()
}

// openInExplorer opens the selected directory in the system file manager
func (a *App) openInExplorer() tea.Cmd {
	node := a.selected()
	if node == nil {
		return nil
	}

	path := node.Path
	if !node.IsDir && node.Parent != nil {
		path = node.Parent.Path
	}
	if err := openInFileManager(path); err != nil {
		logging.Debug.Debug("open in file manager failed", "path", path, "err", err)
	}
	return nil
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	headerHeight := 1
	infoBarHeight := 1
	helpBarHeight := 1

	panelHeight := a.height - headerHeight - infoBarHeight - helpBarHeight - 2
	if panelHeight < 1 {
		panelHeight = 1
	}

	// Tree panel takes only what it needs, max 50% of screen.
	treeWidth := a.tree.RequiredWidth()
	maxTreeWidth := a.width / 2
	if treeWidth > maxTreeWidth {
		treeWidth = maxTreeWidth
	}
	if treeWidth < 20 {
		treeWidth = 20
	}
	a.treeWidth = treeWidth

	a.header.SetWidth(a.width)
	a.tree.SetSize(treeWidth, panelHeight)
	a.treemap.SetSize(a.width-treeWidth, panelHeight)
	a.help.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		if a.scanning {
			return "Scanning..."
		}
		return "Loading..."
	}

	var sections []string
	sections = append(sections, a.header.View())

	if a.err != nil && a.root == nil {
		errStyle := lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)
		sections = append(sections, errStyle.Render(fmt.Sprintf("Error: %v", a.err)))
	}

	if a.scanning || a.root == nil {
		sections = append(sections, a.scanningView())
	} else {
		treeView := a.tree.View()
		treemapView := a.treemap.View()
		panels := lipgloss.JoinHorizontal(lipgloss.Top, treeView, treemapView)
		sections = append(sections, panels)
		sections = append(sections, InfoBar(a.selected(), a.selectedType, a.width))
	}

	sections = append(sections, HelpBar(a.width))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if a.help.IsVisible() {
		overlay := a.help.View()
		return lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			overlay,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(ColorBackground),
		)
	}

	return content
}

// scanningView renders the centered boot-style phase log.
func (a App) scanningView() string {
	panelHeight := a.height - 4
	if panelHeight < 1 {
		panelHeight = 1
	}

	doneStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	activeStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	spinnerIdx := int(time.Now().UnixMilli()/spinnerTickInterval.Milliseconds()) % len(spinnerFrames)
	spinner := spinnerFrames[spinnerIdx]

	counters := ""
	if a.scanFileCount != "" {
		counters = fmt.Sprintf(" · %s · %s", a.scanFileCount, a.scanBytesFound)
	}

	// Boot-style log: completed phases get a check, the current one a
	// spinner, future phases stay hidden.
	var logLines []string
	for _, phase := range scanPhases {
		if phase > a.scanPhase {
			break
		}
		var line string
		if phase < a.scanPhase {
			check := doneStyle.Render("✓")
			text := doneStyle.Render(phase.String())
			if phase == core.PhaseScanning && counters != "" {
				line = fmt.Sprintf("  %s %s%s", check, text, doneStyle.Render(counters))
			} else {
				line = fmt.Sprintf("  %s %s", check, text)
			}
		} else {
			spin := activeStyle.Render(spinner)
			text := activeStyle.Render(phase.String())
			dotCount := (int(time.Now().UnixMilli()/dotAnimationSpeed) % 3) + 1
			dots := activeStyle.Render(strings.Repeat(".", dotCount))
			if phase == core.PhaseScanning && counters != "" {
				line = fmt.Sprintf("  %s %s%s%s", spin, text, dots, activeStyle.Render(counters))
			} else {
				line = fmt.Sprintf("  %s %s%s", spin, text, dots)
			}
		}
		logLines = append(logLines, line)
	}

	for len(logLines) < len(scanPhases) {
		logLines = append([]string{""}, logLines...)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorCyan).
		Padding(1, 3).
		Width(48).
		Render(strings.Join(logLines, "\n"))

	return lipgloss.Place(
		a.width, panelHeight,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}
