package views

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/marksort/internal/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tabs", "$a", "$a"},
		{"tab stop", "$a\t$b", "$a      $b"},
		{"full column", "$abcdefg\t$b", "$abcdefg        $b"},
		{"wide runes", "$日本\t$b", "$日本   $b"},
		{"newline resets", "$a\n\t$b", "$a\n        $b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandTabs(tt.in, 8))
		})
	}
}

func TestFormatResultList(t *testing.T) {
	tokens := make([]string, 10)
	for i := range tokens {
		tokens[i] = "$w"
	}
	out := formatResult(marker.Result{Tokens: tokens}, true)
	lines := splitLines(out)
	require.Len(t, lines, 10)
	assert.Equal(t, " 1  $w", lines[0])
	assert.Equal(t, "10  $w", lines[9])
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func TestResultViewStates(t *testing.T) {
	m := NewResultModel()
	m.SetSize(80, 20)
	assert.Empty(t, m.View())

	var st marker.State
	st.Begin("words.txt")
	m.SetState(st, 0)
	assert.Contains(t, m.View(), "Reading words.txt...")

	st.Complete([]byte("$b\t$a"), nil)
	m.SetState(st, 5)
	view := m.View()
	assert.Contains(t, view, "Sorted Result:")
	assert.Contains(t, view, "2 of 2 tokens")

	st.Complete(nil, os.ErrPermission)
	m.SetState(st, 0)
	view = m.View()
	assert.Contains(t, view, "Error reading file")
	assert.NotContains(t, view, "Sorted Result:")
}

func TestResultToggleLayout(t *testing.T) {
	m := NewResultModel()
	m.SetSize(80, 20)
	var st marker.State
	st.Complete([]byte("$b\t$a"), nil)
	m.SetState(st, 5)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	assert.True(t, m.list)
	assert.Contains(t, m.View(), "1  $a")
}

func TestHomeTypedPath(t *testing.T) {
	m := NewHomeModel()
	m.SetSize(80, 30)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.True(t, m.Capturing())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" /tmp/words.txt ")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Capturing())
	require.NotNil(t, cmd)
	assert.Equal(t, FileSelectedMsg{Path: "/tmp/words.txt"}, cmd())

	// Empty input selects nothing.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestHomeView(t *testing.T) {
	m := NewHomeModel()
	m.SetSize(100, 40)
	view := m.View()
	assert.Contains(t, view, "$ Symbol Word Sorter")
	assert.Contains(t, view, "File should contain tab-separated words starting with $")
}

func newPickerDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"words.txt", "Notes.TXT", "image.png", ".hidden.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("$a"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	return dir
}

func entryNames(entries []FileEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestFilePickerListing(t *testing.T) {
	dir := newPickerDir(t)

	m := NewFilePickerModel(dir, []string{".txt"}, false)
	assert.Equal(t, []string{"..", "sub", "Notes.TXT", "words.txt"}, entryNames(m.Entries()))

	m = NewFilePickerModel(dir, nil, true)
	assert.Equal(t, []string{"..", "sub", ".hidden.txt", "image.png", "Notes.TXT", "words.txt"}, entryNames(m.Entries()))
}

func TestFilePickerNavigation(t *testing.T) {
	dir := newPickerDir(t)
	m := NewFilePickerModel(dir, []string{".txt"}, false)
	m.SetSize(80, 30)

	// Enter the subdirectory, then go back up.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, filepath.Join(dir, "sub"), m.Dir())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, dir, m.Dir())

	// Select the last file.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, FileSelectedMsg{Path: filepath.Join(dir, "words.txt")}, cmd())
}

func TestFilePickerFilter(t *testing.T) {
	dir := newPickerDir(t)
	m := NewFilePickerModel(dir, []string{".txt"}, false)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.Capturing())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wrd")})
	assert.Equal(t, []string{"words.txt"}, entryNames(m.Entries()))

	// A single match is opened on enter.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Capturing())
	require.NotNil(t, cmd)
	assert.Equal(t, FileSelectedMsg{Path: filepath.Join(dir, "words.txt")}, cmd())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.Entries(), 4)
}
