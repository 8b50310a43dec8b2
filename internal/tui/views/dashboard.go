package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
)

// Dashboard shows the directory at a glance: headline counters, the
// five newest clients and the tag distribution.
type Dashboard struct {
	*tview.Flex
	theme   *ui.Theme
	cards   *tview.TextView
	recent  *tview.Table
	tagBars *tview.TextView
	clients []directory.Client
	onOpen  func(id string)
}

// NewDashboard creates the dashboard view.
func NewDashboard(theme *ui.Theme) *Dashboard {
	d := &Dashboard{theme: theme}

	cards := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	cards.SetBackgroundColor(theme.BgColor)
	cards.SetBorder(true)
	cards.SetBorderColor(theme.BorderColor)
	cards.SetTitle(" Overview ")
	cards.SetTitleColor(theme.TitleColor)

	recent := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	recent.SetBackgroundColor(theme.BgColor)
	recent.SetBorder(true)
	recent.SetBorderColor(theme.BorderColor)
	recent.SetTitle(" Recent Clients ")
	recent.SetTitleColor(theme.TitleColor)
	recent.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).Background(theme.TableCursorBg))
	recent.SetSelectedFunc(func(row, col int) {
		idx := row - 1
		if d.onOpen != nil && idx >= 0 && idx < len(d.clients) {
			d.onOpen(d.clients[idx].ID)
		}
	})

	tagBars := tview.NewTextView().
		SetDynamicColors(true)
	tagBars.SetBackgroundColor(theme.BgColor)
	tagBars.SetBorder(true)
	tagBars.SetBorderColor(theme.BorderColor)
	tagBars.SetTitle(" Tags ")
	tagBars.SetTitleColor(theme.TitleColor)

	bottom := tview.NewFlex().
		AddItem(recent, 0, 2, true).
		AddItem(tagBars, 0, 1, false)

	d.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(cards, 5, 0, false).
		AddItem(bottom, 0, 1, true)
	d.cards = cards
	d.recent = recent
	d.tagBars = tagBars
	return d
}

// Name implements Component.
func (d *Dashboard) Name() string { return "Dashboard" }

// Init implements Component.
func (d *Dashboard) Init() {}

// Start implements Component.
func (d *Dashboard) Start() {}

// Stop implements Component.
func (d *Dashboard) Stop() {}

// Hints implements Component.
func (d *Dashboard) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open client"},
		{Key: "c", Description: "Client list"},
	}
}

// SetOnOpen sets the callback when a recent client is opened.
func (d *Dashboard) SetOnOpen(fn func(id string)) {
	d.onOpen = fn
}

// Update refreshes the dashboard from the latest statistics.
func (d *Dashboard) Update(stats directory.Stats) {
	d.renderCards(stats)
	d.renderRecent(stats.RecentClients)
	d.renderTags(stats.TagCounts)
}

func (d *Dashboard) renderCards(stats directory.Stats) {
	d.cards.Clear()
	fg := colorName(d.theme.FgColor)
	counter := colorName(d.theme.CounterColor)

	_, _ = fmt.Fprintf(d.cards,
		"\n[%s::b]%d[-:-:-] [%s]clients[-]    "+
			"[%s::b]%d[-:-:-] [%s]new this month[-]    "+
			"[%s::b]%d[-:-:-] [%s]activities[-]",
		counter, stats.TotalClients, fg,
		counter, stats.NewThisMonth, fg,
		counter, stats.TotalActivities, fg,
	)
}

func (d *Dashboard) renderRecent(clients []directory.Client) {
	d.clients = clients
	d.recent.Clear()

	headerStyle := func(text string) *tview.TableCell {
		return tview.NewTableCell(" " + text).
			SetSelectable(false).
			SetTextColor(d.theme.TableHeaderFg).
			SetBackgroundColor(d.theme.TableHeaderBg)
	}
	d.recent.SetCell(0, 0, headerStyle("NAME"))
	d.recent.SetCell(0, 1, headerStyle("COMPANY"))
	d.recent.SetCell(0, 2, headerStyle("ADDED"))

	for i := range clients {
		c := &clients[i]
		row := i + 1
		d.recent.SetCell(row, 0, tview.NewTableCell(" "+c.FullName()).SetExpansion(2).SetTextColor(d.theme.FgColor))
		d.recent.SetCell(row, 1, tview.NewTableCell(" "+c.Company).SetExpansion(1).SetTextColor(d.theme.FgColor))
		d.recent.SetCell(row, 2, tview.NewTableCell(" "+formatDate(c.CreatedAt)).SetTextColor(d.theme.FgColor))
	}
}

func (d *Dashboard) renderTags(counts []directory.TagCount) {
	d.tagBars.Clear()
	if len(counts) == 0 {
		_, _ = fmt.Fprintf(d.tagBars, " [%s]No tags yet[-]", colorName(d.theme.FgColor))
		return
	}

	fg := colorName(d.theme.FgColor)
	fill := colorName(d.theme.BarFillColor)
	counter := colorName(d.theme.CounterColor)

	for _, tc := range counts {
		width := tc.Percent / 5 // 20 cells at 100%
		bar := strings.Repeat("█", width)
		_, _ = fmt.Fprintf(d.tagBars, " [%s]%-12s[-] [%s]%-20s[-] [%s]%3d%%[-] (%d)\n",
			fg, tc.Tag, fill, bar, counter, tc.Percent, tc.Count)
	}
}
