package views

import (
	"fmt"
	"slices"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
)

// ClientDetail shows one client's record card and activity history.
type ClientDetail struct {
	*tview.Flex
	theme      *ui.Theme
	card       *tview.TextView
	activities *tview.TextView
	clientID   string
}

// NewClientDetail creates the detail view.
func NewClientDetail(theme *ui.Theme) *ClientDetail {
	card := tview.NewTextView().
		SetDynamicColors(true)
	card.SetBackgroundColor(theme.BgColor)
	card.SetBorder(true)
	card.SetBorderColor(theme.BorderColor)
	card.SetTitle(" Client ")
	card.SetTitleColor(theme.TitleColor)

	activities := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	activities.SetBackgroundColor(theme.BgColor)
	activities.SetBorder(true)
	activities.SetBorderColor(theme.BorderColor)
	activities.SetTitle(" Activities ")
	activities.SetTitleColor(theme.TitleColor)

	cd := &ClientDetail{
		theme:      theme,
		card:       card,
		activities: activities,
	}
	cd.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(card, 12, 0, false).
		AddItem(activities, 0, 1, true)
	return cd
}

// Name implements Component.
func (cd *ClientDetail) Name() string { return "Client" }

// Init implements Component.
func (cd *ClientDetail) Init() {}

// Start implements Component.
func (cd *ClientDetail) Start() {}

// Stop implements Component.
func (cd *ClientDetail) Stop() {}

// Hints implements Component.
func (cd *ClientDetail) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "a", Description: "Add activity"},
		{Key: "e", Description: "Edit"},
		{Key: "c", Description: "Contact card"},
		{Key: "ctrl-d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// ClientID returns the id of the displayed client.
func (cd *ClientDetail) ClientID() string {
	return cd.clientID
}

// Update renders the client record. Activities display newest first;
// the stored order is untouched.
func (cd *ClientDetail) Update(c directory.Client) {
	cd.clientID = c.ID
	cd.renderCard(&c)
	cd.renderActivities(c.Activities)
}

func (cd *ClientDetail) renderCard(c *directory.Client) {
	cd.card.Clear()
	cd.card.SetTitle(fmt.Sprintf(" %s  %s ", initials(c.FirstName, c.LastName), c.FullName()))

	fg := colorName(cd.theme.FgColor)
	counter := colorName(cd.theme.CounterColor)
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		_, _ = fmt.Fprintf(cd.card, " [%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, label, counter, value)
	}

	field("Email", c.Email)
	field("Phone", c.Phone)
	field("Company", c.Company)
	field("Position", c.Position)
	field("Tags", joinTags(c.Tags))
	field("Added", formatDate(c.CreatedAt))
	if c.Notes != "" {
		_, _ = fmt.Fprintf(cd.card, "\n [%s]%s[-]\n", fg, c.Notes)
	}
}

func (cd *ClientDetail) renderActivities(activities []directory.Activity) {
	cd.activities.Clear()
	cd.activities.SetTitle(fmt.Sprintf(" Activities (%d) ", len(activities)))

	fg := colorName(cd.theme.FgColor)
	counter := colorName(cd.theme.CounterColor)
	title := colorName(cd.theme.TitleColor)

	if len(activities) == 0 {
		_, _ = fmt.Fprintf(cd.activities, " [%s]No activities recorded[-]", fg)
		return
	}

	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b directory.Activity) int {
		return b.Date.Compare(a.Date)
	})

	for _, a := range sorted {
		_, _ = fmt.Fprintf(cd.activities, " [%s::b]%s[-:-:-] [%s]%s[-]  [%s]%s[-]\n",
			title, activityIcon(a.Type), fg, a.Title, counter, formatDateTime(a.Date))
		_, _ = fmt.Fprintf(cd.activities, "   [%s]%s[-]\n\n", fg, a.Description)
	}
}

func activityIcon(t directory.ActivityType) string {
	switch t {
	case directory.ActivityCall:
		return "📞"
	case directory.ActivityEmail:
		return "✉ "
	case directory.ActivityMeeting:
		return "👥"
	case directory.ActivityNote:
		return "📝"
	}
	return "? "
}
