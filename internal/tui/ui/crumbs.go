package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumbs renders the page stack as a breadcrumb trail. The top of the
// stack is highlighted as the active crumb.
type Crumbs struct {
	*tview.TextView
	theme *Theme
}

// NewCrumbs creates the breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView: tv,
		theme:    theme,
	}
}

// Update redraws the trail from the page stack, bottom first.
func (c *Crumbs) Update(trail []string) {
	c.Clear()
	for i, name := range trail {
		if i > 0 {
			_, _ = fmt.Fprintf(c, "[%s::]›[-:-:-]", colorName(c.theme.FgColor))
		}
		fg, bg, attr := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg, ""
		if i == len(trail)-1 {
			fg, bg, attr = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg, "b"
		}
		_, _ = fmt.Fprintf(c, "[%s:%s:%s] %s [-:-:-]",
			colorName(fg), colorName(bg), attr, name)
	}
}

// colorName returns a tview-compatible color tag value.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
