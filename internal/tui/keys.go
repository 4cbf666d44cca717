package tui

import "github.com/charmbracelet/bubbles/key"

// globalKeys are handled by the app whenever the active view is not taking
// text input.
type globalKeys struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Drop     key.Binding
	Open     key.Binding
	Settings key.Binding
	Sidebar  key.Binding
}

// sidebarKeys move through the menu while the sidebar has focus.
type sidebarKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var keys = globalKeys{
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Show this help")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Focus sidebar / quit")),
	Drop:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Drop zone")),
	Open:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Open file")),
	Settings: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Settings")),
	Sidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Toggle sidebar focus")),
}

var forceQuit = key.NewBinding(key.WithKeys("ctrl+c"))

var menuKeys = sidebarKeys{
	Up:     key.NewBinding(key.WithKeys("k", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", "l", "right")),
}

// helpSection is one titled block of the help overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpBinding(k, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
}

var helpSections = []helpSection{
	{"Global Keys", []key.Binding{keys.Drop, keys.Open, keys.Settings, keys.Sidebar, keys.Help, keys.Quit}},
	{"Drop File", []key.Binding{
		helpBinding("drop/paste", "Load the dropped file"),
		helpBinding("p", "Type a path"),
		helpBinding("↑/↓ ←/→", "Scroll result"),
		helpBinding("w", "Toggle list/line layout"),
		helpBinding("y", "Copy result"),
	}},
	{"Open File", []key.Binding{
		helpBinding("enter", "Select file/enter dir"),
		helpBinding("backspace", "Go to parent dir"),
		helpBinding("~", "Go to home dir"),
		helpBinding("/", "Filter entries"),
	}},
}
