package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/tui/ui"
)

// StatusBar displays the persistent profile/session line.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	profile string
	user    string
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &StatusBar{TextView: tv, theme: theme}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetUser updates the signed-in user display.
func (sb *StatusBar) SetUser(email string) {
	sb.user = email
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	user := sb.user
	if user == "" {
		user = "signed out"
	}
	clock := time.Now().Format("15:04")

	_, _ = fmt.Fprintf(sb, " [::b]%s[-:-:-] | %s | %s", sb.profile, user, clock)
}
