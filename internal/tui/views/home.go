// Package views provides the individual views for the TUI.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marksort/internal/marker"
	"github.com/f3rmion/marksort/internal/tui/bigchar"
)

// DropMsg carries text a terminal pasted into the drop zone when a file was
// dropped on it.
type DropMsg struct {
	Payload string
}

var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

var (
	homeTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1).
			MarginBottom(1)

	dropZoneStyle = lipgloss.NewStyle().
			Border(dashedBorder).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(1, 2).
			Align(lipgloss.Center)

	dropZoneActiveStyle = dropZoneStyle.
				BorderForeground(lipgloss.Color("#4ecdc4"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	dropTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	dropHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// HomeModel is the drop zone with the result panel below it.
type HomeModel struct {
	input  textinput.Model
	result ResultModel
	banner string

	width  int
	height int
}

// NewHomeModel creates the home view.
func NewHomeModel() HomeModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/words.txt"
	ti.Prompt = "path> "
	ti.CharLimit = 4096
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	banner := bigchar.Render(marker.Marker, 10, 5)
	if banner == "" {
		banner = string(marker.Marker)
	}

	return HomeModel{
		input:  ti,
		result: NewResultModel(),
		banner: banner,
	}
}

// SetSize updates the view dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-16, 20)
	m.result.SetSize(width, height-lipgloss.Height(m.dropZone()))
}

// SetState shows the outcome of a load cycle.
func (m *HomeModel) SetState(s marker.State, size int64) {
	m.result.SetState(s, size)
}

// Capturing reports whether the path input is taking keystrokes.
func (m HomeModel) Capturing() bool {
	return m.input.Focused()
}

func drop(payload string) tea.Cmd {
	return func() tea.Msg {
		return DropMsg{Payload: payload}
	}
}

// Update handles messages.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				path := strings.TrimSpace(m.input.Value())
				m.input.Reset()
				m.input.Blur()
				if path == "" {
					return m, nil
				}
				return m, func() tea.Msg {
					return FileSelectedMsg{Path: path}
				}
			case "esc":
				m.input.Reset()
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		// A file dropped on the terminal arrives as a bracketed paste.
		if msg.Paste {
			return m, drop(string(msg.Runes))
		}

		switch msg.String() {
		case "p", "i":
			cmd := m.input.Focus()
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.input.Focused() {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.result, cmd = m.result.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m HomeModel) dropZone() string {
	lines := []string{
		bannerStyle.Render(m.banner),
		"",
		dropTextStyle.Render("Drag and drop your text file here, or press 2 to select"),
		dropHintStyle.Render("File should contain tab-separated words starting with $"),
		"",
	}
	if m.input.Focused() {
		lines = append(lines, m.input.View())
	} else {
		lines = append(lines, dropHintStyle.Render("p: type a path"))
	}

	style := dropZoneStyle
	if m.input.Focused() {
		style = dropZoneActiveStyle
	}
	return style.Width(max(m.width-4, 30)).Render(strings.Join(lines, "\n"))
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(homeTitleStyle.Render("$ Symbol Word Sorter"))
	b.WriteString("\n")
	b.WriteString(m.dropZone())
	b.WriteString("\n\n")
	b.WriteString(m.result.View())

	return b.String()
}
