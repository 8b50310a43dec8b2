package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// ProfileData holds profile and session information for display.
type ProfileData struct {
	Profile    string
	User       string
	Clients    int
	Activities int
	Uptime     time.Duration
}

// ProfileInfo displays profile metadata in the header.
type ProfileInfo struct {
	*tview.TextView
	theme *Theme
}

// NewProfileInfo creates a new profile info panel.
func NewProfileInfo(theme *Theme) *ProfileInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &ProfileInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the profile info.
func (pi *ProfileInfo) Update(data *ProfileData) {
	pi.Clear()
	if data == nil {
		return
	}

	fgColor := colorName(pi.theme.FgColor)
	counterColor := colorName(pi.theme.CounterColor)

	user := data.User
	if user == "" {
		user = "-"
	}

	text := fmt.Sprintf(
		"[%s::b]Profile:[-:-:-]    [%s]%s[-]\n"+
			"[%s::b]User:[-:-:-]       [%s]%s[-]\n"+
			"[%s::b]Clients:[-:-:-]    [%s]%d[-]\n"+
			"[%s::b]Activities:[-:-:-] [%s]%d[-]\n"+
			"[%s::b]Uptime:[-:-:-]     [%s]%s[-]",
		fgColor, counterColor, data.Profile,
		fgColor, counterColor, user,
		fgColor, counterColor, data.Clients,
		fgColor, counterColor, data.Activities,
		fgColor, counterColor, formatDuration(data.Uptime),
	)

	_, _ = fmt.Fprint(pi, text)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
