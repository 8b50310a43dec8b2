package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/tui/ui"
)

// SettingsData holds what the settings view displays.
type SettingsData struct {
	Profile      string
	Theme        string
	ItemsPerPage int
	DBPath       string
	LogPath      string
	ConfigPath   string
	Version      string
	Clients      int
	Activities   int
}

// Settings shows the profile configuration and paths, and hosts the
// theme toggle.
type Settings struct {
	*tview.TextView
	theme *ui.Theme
}

// NewSettings creates the settings view.
func NewSettings(theme *ui.Theme) *Settings {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Settings ")
	tv.SetTitleColor(theme.TitleColor)

	return &Settings{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (sv *Settings) Name() string { return "Settings" }

// Init implements Component.
func (sv *Settings) Init() {}

// Start implements Component.
func (sv *Settings) Start() {}

// Stop implements Component.
func (sv *Settings) Stop() {}

// Hints implements Component.
func (sv *Settings) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "t", Description: "Toggle theme"},
		{Key: "Esc", Description: "Back"},
	}
}

// Update renders the settings snapshot.
func (sv *Settings) Update(data SettingsData) {
	sv.Clear()

	fg := colorName(sv.theme.FgColor)
	counter := colorName(sv.theme.CounterColor)
	field := func(label, value string) {
		_, _ = fmt.Fprintf(sv, " [%s::b]%-15s[-:-:-] [%s]%s[-]\n", fg, label, counter, value)
	}

	_, _ = fmt.Fprint(sv, "\n")
	field("Profile", data.Profile)
	field("Theme", data.Theme+" (press t to toggle, restart to apply)")
	field("Items per page", fmt.Sprintf("%d", data.ItemsPerPage))
	_, _ = fmt.Fprint(sv, "\n")
	field("Database", data.DBPath)
	field("Log file", data.LogPath)
	field("Config", data.ConfigPath)
	_, _ = fmt.Fprint(sv, "\n")
	field("Clients", fmt.Sprintf("%d", data.Clients))
	field("Activities", fmt.Sprintf("%d", data.Activities))
	field("Version", data.Version)
	_, _ = fmt.Fprintf(sv, "\n [%s]Authentication is a demo mock: any credentials are accepted.[-]\n", fg)
}
