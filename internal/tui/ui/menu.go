package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// MenuHint describes one keyboard shortcut shown in the menu panel.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool // 0-9 shortcuts get their own color
}

// Menu is the header panel listing the shortcuts of the current view,
// one per line with the descriptions aligned.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates the menu panel.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update redraws the shortcut list.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()

	widest := 0
	for _, h := range hints {
		if len(h.Key) > widest {
			widest = len(h.Key)
		}
	}

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)
	for _, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		_, _ = fmt.Fprintf(m, "[%s::b]%-*s[-:-:-] %s\n", kc, widest+2, "<"+h.Key+">", h.Description)
	}
}
