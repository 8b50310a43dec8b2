package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
)

// ClientList is the main directory view (K9s-inspired table) showing
// one page of the filtered, sorted collection.
type ClientList struct {
	*tview.Flex
	theme    *ui.Theme
	table    *tview.Table
	footer   *tview.TextView
	clients  []directory.Client
	onSelect func(id string)
}

// NewClientList creates the client list table.
func NewClientList(theme *ui.Theme) *ClientList {
	cl := &ClientList{theme: theme}

	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBackgroundColor(theme.BgColor)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetTitle(" Clients ")
	table.SetTitleColor(theme.TitleColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).Background(theme.TableCursorBg))
	table.SetSelectedFunc(func(row, col int) {
		idx := row - 1
		if cl.onSelect != nil && idx >= 0 && idx < len(cl.clients) {
			cl.onSelect(cl.clients[idx].ID)
		}
	})

	footer := tview.NewTextView().
		SetDynamicColors(true)
	footer.SetBackgroundColor(theme.BgColor)

	cl.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(table, 0, 1, true).
		AddItem(footer, 1, 0, false)
	cl.table = table
	cl.footer = footer
	return cl
}

// Name implements Component.
func (cl *ClientList) Name() string { return "Clients" }

// Init implements Component.
func (cl *ClientList) Init() {}

// Start implements Component.
func (cl *ClientList) Start() {}

// Stop implements Component.
func (cl *ClientList) Stop() {}

// Hints implements Component.
func (cl *ClientList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "a", Description: "Add client"},
		{Key: "d", Description: "Delete"},
		{Key: "/", Description: "Search"},
		{Key: "t", Description: "Tag filter"},
		{Key: "s", Description: "Sort field"},
		{Key: "o", Description: "Sort order"},
		{Key: "0", Description: "Clear filters", Numeric: true},
		{Key: "h/l", Description: "Prev/next page"},
	}
}

// SetOnSelect sets the callback when a client row is opened.
func (cl *ClientList) SetOnSelect(fn func(id string)) {
	cl.onSelect = fn
}

// SelectedClient returns the id of the currently selected row.
func (cl *ClientList) SelectedClient() string {
	row, _ := cl.table.GetSelection()
	idx := row - 1 // account for header
	if idx >= 0 && idx < len(cl.clients) {
		return cl.clients[idx].ID
	}
	return ""
}

// Table returns the inner table for focus handling.
func (cl *ClientList) Table() *tview.Table {
	return cl.table
}

// Update refreshes the list with a new page and its query context. The
// cursor stays on the same client when it is still on the page.
func (cl *ClientList) Update(p directory.Projection, q directory.Query) {
	selected := cl.SelectedClient()
	cl.clients = p.Clients
	cl.table.Clear()

	header := func(col int, text string) {
		cl.table.SetCell(0, col, tview.NewTableCell(" "+text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg))
	}
	header(0, "NAME")
	header(1, "EMAIL")
	header(2, "PHONE")
	header(3, "COMPANY")
	header(4, "TAGS")
	header(5, "CREATED")

	for i := range p.Clients {
		c := &p.Clients[i]
		row := i + 1
		cell := func(col int, text string, expansion int) {
			cl.table.SetCell(row, col, tview.NewTableCell(" "+text).
				SetExpansion(expansion).
				SetTextColor(cl.theme.FgColor))
		}
		cell(0, c.FullName(), 2)
		cell(1, c.Email, 2)
		cell(2, c.Phone, 1)
		cell(3, c.Company, 1)
		cell(4, joinTags(c.Tags), 1)
		cell(5, formatDate(c.CreatedAt), 1)
	}
	if len(p.Clients) > 0 {
		row := 1
		for i := range p.Clients {
			if p.Clients[i].ID == selected {
				row = i + 1
				break
			}
		}
		cl.table.Select(row, 0)
	}

	cl.renderFooter(p, q)
}

func (cl *ClientList) renderFooter(p directory.Projection, q directory.Query) {
	cl.footer.Clear()
	fg := colorName(cl.theme.FgColor)
	counter := colorName(cl.theme.CounterColor)

	line := fmt.Sprintf(" [%s]Page[-] [%s]%d/%d[-] [%s](%d matched)[-]",
		fg, counter, p.Page, max(p.TotalPages, 1), fg, p.TotalMatched)
	if q.SearchTerm != "" {
		line += fmt.Sprintf("  [%s]search:[-] [%s]%q[-]", fg, counter, q.SearchTerm)
	}
	if len(q.SelectedTags) > 0 {
		line += fmt.Sprintf("  [%s]tags:[-] [%s]%s[-]", fg, counter, joinTags(q.SelectedTags))
	}
	line += fmt.Sprintf("  [%s]sort:[-] [%s]%s %s[-]", fg, counter, q.SortBy, q.SortOrder)
	_, _ = fmt.Fprint(cl.footer, line)
}
