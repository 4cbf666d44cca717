package views

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/f3rmion/marksort/internal/source"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FileSelectedMsg is sent when a file is selected
type FileSelectedMsg struct {
	Path string
}

// File picker styles
var (
	fpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	fpPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			MarginBottom(1)

	fpDirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true)

	fpFileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	fpSizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	fpSelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#2d3436"))

	fpFilterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d"))

	fpHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	fpErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	fpSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3d5a80"))
)

// FileEntry represents a file or directory
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
	Size  int64
}

// FilePickerModel is the file picker view model.
type FilePickerModel struct {
	currentDir string
	all        []FileEntry // Directory listing
	entries    []FileEntry // Listing after the fuzzy filter
	selected   int
	offset     int // For scrolling

	extensions []string // Filter to these extensions
	showHidden bool

	filtering bool
	query     string

	err error

	width  int
	height int
}

// NewFilePickerModel creates a file picker opened at dir, listing files that
// match one of the extensions.
func NewFilePickerModel(dir string, extensions []string, showHidden bool) FilePickerModel {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	dir = source.ExpandHome(dir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir, _ = os.UserHomeDir()
		if dir == "" {
			dir = "/"
		}
	}

	m := FilePickerModel{
		currentDir: dir,
		extensions: extensions,
		showHidden: showHidden,
	}
	m.loadDir()
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory being listed.
func (m FilePickerModel) Dir() string {
	return m.currentDir
}

// Entries returns the entries currently shown.
func (m FilePickerModel) Entries() []FileEntry {
	return m.entries
}

// Capturing reports whether the fuzzy filter is taking keystrokes.
func (m FilePickerModel) Capturing() bool {
	return m.filtering
}

// Refresh re-reads the current directory.
func (m *FilePickerModel) Refresh() {
	m.loadDir()
}

// loadDir loads the entries from the current directory
func (m *FilePickerModel) loadDir() {
	m.all = nil
	m.err = nil
	m.query = ""
	m.filtering = false

	entries, err := os.ReadDir(m.currentDir)
	if err != nil {
		m.err = err
		m.applyFilter()
		return
	}

	// Add parent directory entry
	if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
		m.all = append(m.all, FileEntry{
			Name:  "..",
			IsDir: true,
			Path:  parent,
		})
	}

	var dirs, files []FileEntry

	for _, entry := range entries {
		if !m.showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		fe := FileEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
			Path:  filepath.Join(m.currentDir, entry.Name()),
		}

		if entry.IsDir() {
			dirs = append(dirs, fe)
			continue
		}
		if !source.HasExtension(entry.Name(), m.extensions) {
			continue
		}
		if info, err := entry.Info(); err == nil {
			fe.Size = info.Size()
		}
		files = append(files, fe)
	}

	sort.Slice(dirs, func(i, j int) bool {
		return strings.ToLower(dirs[i].Name) < strings.ToLower(dirs[j].Name)
	})
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})

	// Dirs first, then files
	m.all = append(m.all, dirs...)
	m.all = append(m.all, files...)
	m.applyFilter()
}

// applyFilter narrows the listing to entries fuzzily matching the query,
// best matches first.
func (m *FilePickerModel) applyFilter() {
	m.selected = 0
	m.offset = 0

	if m.query == "" {
		m.entries = m.all
		return
	}

	names := make([]string, len(m.all))
	for i, e := range m.all {
		names[i] = e.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(m.query, names)
	sort.Stable(ranks)

	m.entries = make([]FileEntry, 0, len(ranks))
	for _, r := range ranks {
		m.entries = append(m.entries, m.all[r.OriginalIndex])
	}
}

func (m *FilePickerModel) chdir(dir string) {
	m.currentDir = dir
	m.loadDir()
}

// Update handles messages.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		return m.updateFilter(keyMsg)
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.adjustScroll()
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case "enter", "l", "right":
		cmd := m.open()
		return m, cmd
	case "backspace", "h":
		if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
			m.chdir(parent)
		}
	case "~":
		if home, _ := os.UserHomeDir(); home != "" {
			m.chdir(home)
		}
	case "/":
		m.filtering = true
	case "g":
		m.selected = 0
		m.offset = 0
	case "G":
		m.selected = max(len(m.entries)-1, 0)
		m.adjustScroll()
	case "ctrl+d":
		m.selected = min(m.selected+m.getVisibleHeight()/2, max(len(m.entries)-1, 0))
		m.adjustScroll()
	case "ctrl+u":
		m.selected = max(m.selected-m.getVisibleHeight()/2, 0)
		m.adjustScroll()
	}

	return m, nil
}

func (m FilePickerModel) updateFilter(msg tea.KeyMsg) (FilePickerModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.query = ""
		m.applyFilter()
	case tea.KeyEnter:
		m.filtering = false
		if len(m.entries) == 1 {
			cmd := m.open()
			return m, cmd
		}
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyDown:
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.adjustScroll()
		}
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

// open enters the selected directory or emits FileSelectedMsg for a file.
func (m *FilePickerModel) open() tea.Cmd {
	if m.selected >= len(m.entries) {
		return nil
	}
	entry := m.entries[m.selected]
	if entry.IsDir {
		m.chdir(entry.Path)
		return nil
	}
	return func() tea.Msg {
		return FileSelectedMsg{Path: entry.Path}
	}
}

func (m *FilePickerModel) getVisibleHeight() int {
	return max(m.height-8, 5) // Account for header, path, help
}

func (m *FilePickerModel) adjustScroll() {
	visibleHeight := m.getVisibleHeight()

	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visibleHeight {
		m.offset = m.selected - visibleHeight + 1
	}
}

// View renders the file picker.
func (m FilePickerModel) View() string {
	var b strings.Builder

	exts := strings.Join(m.extensions, ", ")
	if exts == "" {
		exts = "any"
	}

	b.WriteString(fpTitleStyle.Render("Select Text File (" + exts + ")"))
	b.WriteString("\n")
	b.WriteString(fpPathStyle.Render(m.currentDir))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fpErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.filtering || m.query != "" {
		b.WriteString(fpFilterStyle.Render("/" + m.query))
		b.WriteString("\n")
	}

	separator := fpSeparatorStyle.Render(strings.Repeat("─", max(min(m.width-4, 60), 0)))
	b.WriteString(separator)
	b.WriteString("\n")

	visibleHeight := m.getVisibleHeight()
	start := m.offset
	end := min(start+visibleHeight, len(m.entries))

	if len(m.entries) == 0 {
		b.WriteString(fpHelpStyle.Render("  (no matching files found)"))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		entry := m.entries[i]

		var style lipgloss.Style
		switch {
		case i == m.selected:
			style = fpSelectedStyle
		case entry.IsDir:
			style = fpDirStyle
		default:
			style = fpFileStyle
		}

		prefix := "  "
		if i == m.selected {
			prefix = "> "
		}

		b.WriteString(prefix)
		if entry.IsDir {
			b.WriteString(style.Render("[DIR]  " + entry.Name))
		} else {
			b.WriteString(style.Render("[FILE] " + entry.Name))
			b.WriteString(fpSizeStyle.Render("  " + humanize.Bytes(uint64(entry.Size))))
		}
		b.WriteString("\n")
	}

	if len(m.entries) > visibleHeight {
		b.WriteString(fpSizeStyle.Render(strings.Repeat(" ", 50) + "↕ scroll"))
		b.WriteString("\n")
	}

	b.WriteString(separator)
	b.WriteString("\n")

	if m.filtering {
		b.WriteString(fpHelpStyle.Render("type to filter • enter: done • esc: clear"))
	} else {
		b.WriteString(fpHelpStyle.Render("enter: select • backspace: parent • ~: home • /: filter"))
	}

	return b.String()
}
