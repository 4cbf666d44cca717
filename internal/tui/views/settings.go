package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/marksort/internal/config"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	settingsLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8dadc")).
				Width(14)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

// SettingsModel shows the effective configuration.
type SettingsModel struct {
	config    *config.Config
	configDir string

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string) SettingsModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	return m, nil
}

func (m SettingsModel) row(label, value string) string {
	if value == "" {
		value = settingsMutedStyle.Render("(default)")
	} else {
		value = settingsRowStyle.Render(value)
	}
	return settingsLabelStyle.Render(label) + value + "\n"
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder
	cfg := m.config

	b.WriteString(settingsTitleStyle.Render("marksort Configuration"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir + "/" + config.FileName))
	b.WriteString("\n\n")

	b.WriteString(settingsHeaderStyle.Render("Sorting"))
	b.WriteString("\n")
	b.WriteString(m.row("Marker", "$"))
	b.WriteString(m.row("Collation", cfg.Collation))
	if strings.EqualFold(cfg.Collation, "locale") {
		b.WriteString(m.row("Locale", cfg.Locale))
	}
	b.WriteString("\n")

	b.WriteString(settingsHeaderStyle.Render("File Picker"))
	b.WriteString("\n")
	b.WriteString(m.row("Start dir", cfg.StartDir))
	b.WriteString(m.row("Extensions", strings.Join(cfg.Extensions, ", ")))
	b.WriteString(m.row("Hidden files", fmt.Sprint(cfg.ShowHidden)))
	b.WriteString("\n")

	b.WriteString(settingsHeaderStyle.Render("Logging"))
	b.WriteString("\n")
	b.WriteString(m.row("File", cfg.LogFile(m.configDir)))
	b.WriteString(m.row("Level", cfg.Log.Level))
	b.WriteString(m.row("Rotation", fmt.Sprintf("%d MB × %d backups, %d days", cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays)))
	b.WriteString("\n")

	b.WriteString(settingsMutedStyle.Render("Run 'marksort init' to create a config file"))

	return b.String()
}
