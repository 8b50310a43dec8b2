package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/tui/ui"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render() {
	kc := colorName(hv.theme.MenuKeyColor)

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  [%s]:[-:-:-]      Command mode       [%s]Esc[-:-:-]    Cancel / Go back
  [%s]?[-:-:-]      Help               [%s]Ctrl-C[-:-:-] Quit immediately
  [%s]q[-:-:-]      Quit / Back

  [::b]Client List[-:-:-]

  [%s]Enter[-:-:-]  Open client        [%s]a[-:-:-]      Add client
  [%s]/[-:-:-]      Live search        [%s]Ctrl-D[-:-:-] Delete selected
  [%s]t[-:-:-]      Cycle tag filter   [%s]0[-:-:-]      Clear filters
  [%s]s[-:-:-]      Cycle sort field   [%s]o[-:-:-]      Flip sort order
  [%s]h/l[-:-:-]    Prev / next page   [%s]j/k[-:-:-]    Move cursor

  [::b]Client Detail[-:-:-]

  [%s]a[-:-:-]      Add activity       [%s]e[-:-:-]      Edit client
  [%s]c[-:-:-]      Contact card (QR)  [%s]Ctrl-D[-:-:-] Delete client

  [::b]Commands (: mode)[-:-:-]

  [%s]:dashboard[-:-:-]         Go to the dashboard
  [%s]:clients[-:-:-]           Go to the client list
  [%s]:client <id>[-:-:-]       Open a client by id
  [%s]:add[-:-:-]               New client form
  [%s]:settings[-:-:-]          Open settings
  [%s]:logout[-:-:-]            Sign out
  [%s]:help[-:-:-] / [%s]:h[-:-:-]        Show this help
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]        Quit application
`,
		kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}
