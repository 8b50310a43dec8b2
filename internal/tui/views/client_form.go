package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
	"github.com/gaillardy/crm/internal/validate"
)

// ClientForm is the add/edit form for a client record. The same form
// backs both flows; Reset puts it in add mode, SetClient in edit mode.
type ClientForm struct {
	*tview.Flex
	theme    *ui.Theme
	form     *tview.Form
	errText  *tview.TextView
	editID   string
	onSubmit func(editID string, in directory.ClientInput)
	onCancel func()
}

const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPhone
	fieldCompany
	fieldPosition
	fieldNotes
	fieldTags
)

// NewClientForm creates the client form.
func NewClientForm(theme *ui.Theme) *ClientForm {
	cf := &ClientForm{theme: theme}

	form := tview.NewForm().
		AddInputField("First name", "", 40, nil, nil).
		AddInputField("Last name", "", 40, nil, nil).
		AddInputField("Email", "", 40, nil, nil).
		AddInputField("Phone", "", 40, nil, nil).
		AddInputField("Company", "", 40, nil, nil).
		AddInputField("Position", "", 40, nil, nil).
		AddInputField("Notes", "", 40, nil, nil).
		AddInputField("Tags (comma separated)", "", 40, nil, nil)
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.FgColor)
	form.SetTitleColor(theme.TitleColor)
	form.SetButtonBackgroundColor(theme.BorderColor)
	form.AddButton("Save", func() { cf.submit() })
	form.AddButton("Cancel", func() {
		if cf.onCancel != nil {
			cf.onCancel()
		}
	})

	errText := tview.NewTextView().
		SetDynamicColors(true)
	errText.SetBackgroundColor(theme.BgColor)

	cf.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errText, 3, 0, false)
	cf.form = form
	cf.errText = errText
	cf.Reset()
	return cf
}

// Name implements Component.
func (cf *ClientForm) Name() string { return "Client Form" }

// Init implements Component.
func (cf *ClientForm) Init() {}

// Start implements Component.
func (cf *ClientForm) Start() {}

// Stop implements Component.
func (cf *ClientForm) Stop() {}

// Hints implements Component.
func (cf *ClientForm) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// SetOnSubmit sets the callback for a validated submission. editID is
// empty in add mode.
func (cf *ClientForm) SetOnSubmit(fn func(editID string, in directory.ClientInput)) {
	cf.onSubmit = fn
}

// SetOnCancel sets the callback when the form is abandoned.
func (cf *ClientForm) SetOnCancel(fn func()) {
	cf.onCancel = fn
}

// Reset clears the form for a new client.
func (cf *ClientForm) Reset() {
	cf.editID = ""
	cf.form.SetTitle(" New Client ")
	for i := fieldFirstName; i <= fieldTags; i++ {
		cf.field(i).SetText("")
	}
	cf.errText.Clear()
	cf.form.SetFocus(0)
}

// SetClient prefills the form for editing an existing client.
func (cf *ClientForm) SetClient(c directory.Client) {
	cf.editID = c.ID
	cf.form.SetTitle(fmt.Sprintf(" Edit %s ", c.FullName()))
	cf.field(fieldFirstName).SetText(c.FirstName)
	cf.field(fieldLastName).SetText(c.LastName)
	cf.field(fieldEmail).SetText(c.Email)
	cf.field(fieldPhone).SetText(c.Phone)
	cf.field(fieldCompany).SetText(c.Company)
	cf.field(fieldPosition).SetText(c.Position)
	cf.field(fieldNotes).SetText(c.Notes)
	cf.field(fieldTags).SetText(strings.Join(c.Tags, ", "))
	cf.errText.Clear()
	cf.form.SetFocus(0)
}

func (cf *ClientForm) field(i int) *tview.InputField {
	return cf.form.GetFormItem(i).(*tview.InputField)
}

func (cf *ClientForm) submit() {
	in := directory.ClientInput{
		FirstName: strings.TrimSpace(cf.field(fieldFirstName).GetText()),
		LastName:  strings.TrimSpace(cf.field(fieldLastName).GetText()),
		Email:     strings.TrimSpace(cf.field(fieldEmail).GetText()),
		Phone:     strings.TrimSpace(cf.field(fieldPhone).GetText()),
		Company:   strings.TrimSpace(cf.field(fieldCompany).GetText()),
		Position:  strings.TrimSpace(cf.field(fieldPosition).GetText()),
		Notes:     strings.TrimSpace(cf.field(fieldNotes).GetText()),
		Tags:      parseTags(cf.field(fieldTags).GetText()),
	}

	if err := validate.Client(in); err != nil {
		var errs validate.Errors
		if errors.As(err, &errs) {
			cf.showFieldErrors(errs)
		}
		return
	}
	cf.errText.Clear()
	if cf.onSubmit != nil {
		cf.onSubmit(cf.editID, in)
	}
}

func (cf *ClientForm) showFieldErrors(errs validate.Errors) {
	cf.errText.Clear()
	color := colorName(cf.theme.FlashErrColor)
	for _, fe := range errs {
		_, _ = fmt.Fprintf(cf.errText, " [%s]%s[-]\n", color, fe.Message)
	}
}

// parseTags splits a comma separated tag list, dropping empties and
// duplicates while keeping first-seen order.
func parseTags(text string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
