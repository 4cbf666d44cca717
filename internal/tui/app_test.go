package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/marksort/internal/config"
	"github.com/f3rmion/marksort/internal/marker"
	"github.com/f3rmion/marksort/internal/tui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok)
	return app, cmd
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	cfg := config.Default()
	cfg.StartDir = t.TempDir()
	app, _ := update(t, NewApp(cfg, t.TempDir(), nil), tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func TestDropLoadsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.txt", "$banana\tapple\t$apple\t$cherry")
	app := newTestApp(t)

	app, cmd := update(t, app, views.DropMsg{Payload: "'" + path + "'"})
	require.NotNil(t, cmd)
	assert.Equal(t, marker.Reading, app.State().Phase)

	msg := cmd()
	loaded, ok := msg.(LoadedMsg)
	require.True(t, ok)
	assert.Equal(t, path, loaded.Path)

	app, _ = update(t, app, msg)
	st := app.State()
	assert.Equal(t, marker.Done, st.Phase)
	assert.Equal(t, "$apple\t$banana\t$cherry", st.Result.Text)
	assert.Equal(t, "words.txt", st.Source)

	view := app.View()
	assert.Contains(t, view, "Sorted Result:")
	assert.Contains(t, view, "$apple")
}

func TestPasteConvergesWithPicker(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.txt", "$b\t$a")

	// Drop: the terminal pastes the path.
	dropped := newTestApp(t)
	dropped, _ = update(t, dropped, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path), Paste: true})
	dropped, cmd := update(t, dropped, views.DropMsg{Payload: path})
	require.NotNil(t, cmd)
	dropped, _ = update(t, dropped, cmd())

	// Picker: the file is selected.
	picked := newTestApp(t)
	picked, cmd = update(t, picked, views.FileSelectedMsg{Path: path})
	require.NotNil(t, cmd)
	picked, _ = update(t, picked, cmd())

	assert.Equal(t, picked.State().Result, dropped.State().Result)
	assert.Equal(t, "$a\t$b", picked.State().Result.Text)
}

func TestPasteKeyEmitsDrop(t *testing.T) {
	app := newTestApp(t)
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, ViewSettings, app.currentView)

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp/x.txt"), Paste: true})
	assert.Equal(t, ViewHome, app.currentView)
	require.NotNil(t, cmd)
	assert.Equal(t, views.DropMsg{Payload: "/tmp/x.txt"}, cmd())
}

func TestEmptyDropIsNoop(t *testing.T) {
	app := newTestApp(t)

	app, cmd := update(t, app, views.DropMsg{Payload: "   "})
	assert.Nil(t, cmd)
	assert.Equal(t, marker.Idle, app.State().Phase)
}

func TestReadFailure(t *testing.T) {
	app := newTestApp(t)

	app, cmd := update(t, app, views.DropMsg{Payload: filepath.Join(t.TempDir(), "missing.txt")})
	require.NotNil(t, cmd)
	app, _ = update(t, app, cmd())

	st := app.State()
	assert.Equal(t, marker.ReadFailed, st.Phase)
	assert.Equal(t, "Error reading file", st.Message)
	assert.Contains(t, app.View(), "Error reading file")
	assert.NotContains(t, app.View(), "Sorted Result:")
}

func TestProcessingFailureReplacesResult(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "$a")
	bad := writeFile(t, dir, "bad.txt", "\x00\x01\x02\x03binary\xff")

	app := newTestApp(t)
	app, cmd := update(t, app, views.FileSelectedMsg{Path: good})
	app, _ = update(t, app, cmd())
	require.Equal(t, "$a", app.State().Result.Text)

	app, cmd = update(t, app, views.FileSelectedMsg{Path: bad})
	app, _ = update(t, app, cmd())

	st := app.State()
	assert.Equal(t, marker.Failed, st.Phase)
	assert.Empty(t, st.Result.Text)
	assert.Equal(t, "Error processing file. Please ensure it's a valid text file with tab-separated words.", st.Message)
}

func TestLastCompletionWins(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "$first")
	second := writeFile(t, dir, "second.txt", "$second")

	app := newTestApp(t)
	app, firstCmd := update(t, app, views.FileSelectedMsg{Path: first})
	app, secondCmd := update(t, app, views.FileSelectedMsg{Path: second})

	// The second read completes before the first.
	app, _ = update(t, app, secondCmd())
	app, _ = update(t, app, firstCmd())

	assert.Equal(t, "$first", app.State().Result.Text)
	assert.Equal(t, "first.txt", app.State().Source)
}

func TestPickerSelectionShowsResultPanel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.txt", "$b\t$a")
	app := newTestApp(t)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.Equal(t, ViewFilePicker, app.currentView)

	app, cmd := update(t, app, views.FileSelectedMsg{Path: path})
	assert.Equal(t, ViewHome, app.currentView)
	require.NotNil(t, cmd)
	app, _ = update(t, app, cmd())

	view := app.View()
	assert.Contains(t, view, "Drag and drop your text file here")
	assert.Contains(t, view, "Sorted Result:")
	assert.Len(t, app.menuItems, 3)
}

func TestNewAppWithFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "start.txt", "$z\t$y")

	app := NewAppWithFile(config.Default(), t.TempDir(), nil, path)
	assert.Equal(t, marker.Reading, app.State().Phase)

	cmd := app.Init()
	require.NotNil(t, cmd)
	app, _ = update(t, app, cmd())
	assert.Equal(t, "$y\t$z", app.State().Result.Text)
}

func TestGlobalKeys(t *testing.T) {
	app := newTestApp(t)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, app.showHelp)
	assert.Contains(t, app.View(), "Press any key to close")

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, app.showHelp)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	assert.Equal(t, ViewFilePicker, app.currentView)

	// Typing a path must not trigger global shortcuts.
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.True(t, app.capturing())
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, ViewHome, app.currentView)

	_, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
