package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/f3rmion/marksort/internal/clipboard"
	"github.com/f3rmion/marksort/internal/marker"
	"github.com/mattn/go-runewidth"
)

// tabWidth is the tab stop used when showing the tab-joined result.
const tabWidth = 8

var (
	resultHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#f1faee")).
				MarginBottom(1)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Foreground(lipgloss.Color("#a8dadc")).
			Padding(0, 1)

	resultStatsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff6b6b")).
				Background(lipgloss.Color("#3b1f2b")).
				Bold(true).
				Padding(1, 2)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type copiedMsg struct {
	err error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.Write(text)}
	}
}

// ResultModel presents the outcome of the last load cycle: the sorted
// result, the error banner, or nothing.
type ResultModel struct {
	viewport viewport.Model
	state    marker.State
	size     int64
	list     bool // One token per line instead of the tab-joined line

	copied  bool
	copyErr error

	width  int
	height int
}

// NewResultModel creates an empty result panel.
func NewResultModel() ResultModel {
	vp := viewport.New(0, 0)
	vp.SetHorizontalStep(tabWidth)
	return ResultModel{viewport: vp}
}

// SetSize updates the panel dimensions.
func (m *ResultModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-6, 3)
}

// SetState replaces the displayed outcome. size is the source file size.
func (m *ResultModel) SetState(s marker.State, size int64) {
	m.state = s
	m.size = size
	m.copied = false
	m.copyErr = nil
	m.refresh()
	m.viewport.GotoTop()
}

// State returns the outcome currently displayed.
func (m ResultModel) State() marker.State {
	return m.state
}

func (m *ResultModel) refresh() {
	if !m.state.ShowResult() {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(formatResult(m.state.Result, m.list))
}

// formatResult lays out the result for the terminal. The joined form keeps
// the tab separators, expanded to spaces so columns stay aligned.
func formatResult(res marker.Result, list bool) string {
	if !list {
		return expandTabs(res.Text, tabWidth)
	}

	digits := len(fmt.Sprint(len(res.Tokens)))
	lines := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		lines[i] = fmt.Sprintf("%*d  %s", digits, i+1, tok)
	}
	return strings.Join(lines, "\n")
}

// expandTabs replaces tabs with spaces up to the next tab stop, measuring
// columns by display width.
func expandTabs(s string, width int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			pad := width - col%width
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
	}
	return b.String()
}

// Update handles messages.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		m.copied = msg.err == nil
		m.copyErr = msg.err
		return m, clearCopiedAfter(2 * time.Second)

	case clearCopiedMsg:
		m.copied = false
		m.copyErr = nil
		return m, nil

	case tea.KeyMsg:
		if !m.state.ShowResult() {
			return m, nil
		}
		switch msg.String() {
		case "y":
			return m, copyToClipboard(m.state.Result.Text)
		case "w":
			m.list = !m.list
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m ResultModel) View() string {
	var b strings.Builder

	if m.state.Phase.Busy() {
		b.WriteString(loadingStyle.Render("Reading " + m.state.Source + "..."))
		b.WriteString("\n\n")
	}

	if m.state.ShowError() {
		b.WriteString(errorBannerStyle.Width(max(m.width-4, 20)).Render(m.state.Message))
		return b.String()
	}

	if !m.state.ShowResult() {
		return b.String()
	}

	b.WriteString(resultHeadingStyle.Render("Sorted Result:"))
	b.WriteString("\n")
	b.WriteString(resultBoxStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	res := m.state.Result
	stats := fmt.Sprintf("%s of %s tokens · %s · %s",
		humanize.Comma(int64(len(res.Tokens))),
		humanize.Comma(int64(res.Scanned)),
		m.state.Source,
		humanize.Bytes(uint64(m.size)))
	b.WriteString(resultStatsStyle.Render(stats))

	switch {
	case m.copied:
		b.WriteString("  ")
		b.WriteString(copiedStyle.Render("Copied!"))
	case m.copyErr != nil:
		b.WriteString("  ")
		b.WriteString(errorBannerStyle.Padding(0).Render("Copy failed: " + m.copyErr.Error()))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("↑/↓ scroll • ←/→ pan • w: list/line • y: copy"))

	return b.String()
}
