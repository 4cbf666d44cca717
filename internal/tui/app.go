package tui

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marksort/internal/config"
	"github.com/f3rmion/marksort/internal/logging"
	"github.com/f3rmion/marksort/internal/marker"
	"github.com/f3rmion/marksort/internal/source"
	"github.com/f3rmion/marksort/internal/tui/views"
)

// ViewType identifies one of the views reachable from the sidebar.
type ViewType int

const (
	ViewHome ViewType = iota
	ViewFilePicker
	ViewSettings
)

// MenuItem is a sidebar entry.
type MenuItem struct {
	Label string
	View  ViewType
	Key   key.Binding
}

// LoadedMsg is sent when a file read started by the app completes.
type LoadedMsg struct {
	Seq      int
	Path     string
	Doc      *source.Document
	Err      error
	Duration time.Duration
}

// AppModel is the main TUI model
type AppModel struct {
	config    *config.Config
	collation marker.Collation
	logger    *slog.Logger

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	homeView       views.HomeModel
	filePickerView views.FilePickerModel
	settingsView   views.SettingsModel

	// Load cycle
	state   marker.State
	seq     int
	pending string // Path given on the command line, read by Init

	// Help overlay
	showHelp bool
}

// NewApp creates a new TUI application
func NewApp(cfg *config.Config, configDir string, logger *slog.Logger) AppModel {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	collation, err := cfg.ParseCollation()
	if err != nil {
		logger.Warn("invalid collation, using code point order", "error", err)
		collation = marker.CodePoint()
	}

	menuItems := []MenuItem{
		{Label: "Drop File", View: ViewHome, Key: keys.Drop},
		{Label: "Open File", View: ViewFilePicker, Key: keys.Open},
		{Label: "Settings", View: ViewSettings, Key: keys.Settings},
	}

	return AppModel{
		config:       cfg,
		collation:    collation,
		logger:       logger,
		sidebarWidth: 18,
		currentView:  ViewHome,
		menuItems:    menuItems,

		homeView:       views.NewHomeModel(),
		filePickerView: views.NewFilePickerModel(cfg.PickerDir(), cfg.Extensions, cfg.ShowHidden),
		settingsView:   views.NewSettingsModel(cfg, configDir),
	}
}

// NewAppWithFile creates a new app that loads path on start.
func NewAppWithFile(cfg *config.Config, configDir string, logger *slog.Logger, path string) AppModel {
	app := NewApp(cfg, configDir, logger)
	if path != "" {
		app.seq++
		app.pending = path
		app.state.Begin(filepath.Base(path))
		app.homeView.SetState(app.state, 0)
	}
	return app
}

// State returns the current load cycle state.
func (m AppModel) State() marker.State {
	return m.state
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	if m.pending != "" {
		return m.readFile(m.seq, m.pending)
	}
	return nil
}

// capturing reports whether the active view consumes plain keystrokes.
func (m AppModel) capturing() bool {
	switch m.currentView {
	case ViewHome:
		return m.homeView.Capturing()
	case ViewFilePicker:
		return m.filePickerView.Capturing()
	}
	return false
}

func (m *AppModel) switchView(v ViewType) {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.homeView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)

		return m, nil

	case views.DropMsg:
		path, ok := source.ParseDrop(msg.Payload)
		if !ok {
			return m, nil
		}
		return m.startLoad(path)

	case views.FileSelectedMsg:
		m.switchView(ViewHome)
		return m.startLoad(msg.Path)

	case LoadedMsg:
		m.finishLoad(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewHome:
		m.homeView, cmd = m.homeView.Update(msg)
	case ViewFilePicker:
		m.filePickerView, cmd = m.filePickerView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	return m, cmd
}

// handleKey applies app-level keys. It reports false when the key belongs to
// the active view.
func (m AppModel) handleKey(msg tea.KeyMsg) (AppModel, tea.Cmd, bool) {
	if m.showHelp {
		m.showHelp = false
		return m, nil, true
	}
	if key.Matches(msg, forceQuit) {
		return m, tea.Quit, true
	}

	if msg.Paste {
		// Dropping a file always lands in the drop zone.
		if !m.capturing() {
			m.switchView(ViewHome)
		}
		return m, nil, false
	}

	if !m.capturing() {
		for _, item := range m.menuItems {
			if key.Matches(msg, item.Key) {
				if item.View == ViewFilePicker {
					m.filePickerView.Refresh()
				}
				m.switchView(item.View)
				return m, nil, true
			}
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit, true
		case key.Matches(msg, keys.Help):
			m.showHelp = true
			return m, nil, true
		case key.Matches(msg, keys.Back):
			if m.sidebarActive {
				return m, tea.Quit, true
			}
			m.sidebarActive = true
			return m, nil, true
		case key.Matches(msg, keys.Sidebar):
			m.sidebarActive = !m.sidebarActive
			return m, nil, true
		}
	}

	if !m.sidebarActive {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, menuKeys.Down):
		m.selectedMenu = min(m.selectedMenu+1, len(m.menuItems)-1)
	case key.Matches(msg, menuKeys.Up):
		m.selectedMenu = max(m.selectedMenu-1, 0)
	case key.Matches(msg, menuKeys.Select):
		m.switchView(m.menuItems[m.selectedMenu].View)
	}
	return m, nil, true
}

// startLoad begins a load cycle. Cycles are not cancelled; when several are
// in flight the last one to complete determines what is shown.
func (m AppModel) startLoad(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, nil
	}

	m.seq++
	m.state.Begin(filepath.Base(path))
	m.homeView.SetState(m.state, 0)
	m.logger.Info("load started", "seq", m.seq, "path", path)

	return m, m.readFile(m.seq, path)
}

// readFile reads path off the UI goroutine.
func (m AppModel) readFile(seq int, path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		doc, err := source.Load(context.Background(), path)
		return LoadedMsg{Seq: seq, Path: path, Doc: doc, Err: err, Duration: time.Since(start)}
	}
}

// finishLoad runs the processing stages on a completed read and records the
// outcome.
func (m *AppModel) finishLoad(msg LoadedMsg) {
	if errors.Is(msg.Err, source.ErrNoFile) {
		return
	}

	var raw []byte
	var size int64
	if msg.Doc != nil {
		raw = msg.Doc.Raw
		size = msg.Doc.Size
	}

	m.state.Source = filepath.Base(msg.Path)
	m.state.Complete(raw, msg.Err, marker.WithCollation(m.collation))
	m.homeView.SetState(m.state, size)

	if m.state.Err != nil {
		m.logger.Info("load failed", "seq", msg.Seq, "path", msg.Path, "kind", marker.KindOf(m.state.Err))
		m.logger.Debug("load failure cause", "seq", msg.Seq, "error", m.state.Err)
		return
	}

	res := m.state.Result
	m.logger.Info("load finished",
		"seq", msg.Seq,
		"path", msg.Path,
		"bytes", size,
		"tokens", res.Scanned,
		"kept", len(res.Tokens),
		"collation", m.collation.String(),
		"read", msg.Duration)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewHome:
		content = m.homeView.View()
	case ViewFilePicker:
		content = m.filePickerView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" $ marksort "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Key.Help().Key + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	if m.state.Phase.Busy() {
		items = append(items, "", SidebarStatusStyle.Render(m.state.Phase.String()+"..."))
	}

	usedHeight := len(items) + 4 // account for borders and help
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	var b strings.Builder

	b.WriteString(HelpTitleStyle.Render("marksort - $ Symbol Word Sorter"))
	b.WriteString("\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(HelpSectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, kb := range section.bindings {
			h := kb.Help()
			b.WriteString(HelpKeyStyle.Render(h.Key) + HelpDescStyle.Render(h.Desc) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(HelpHintStyle.Render("Press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(b.String()))
}
