package views

import (
	"errors"
	"fmt"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/tui/ui"
	"github.com/gaillardy/crm/internal/validate"
)

// ActivityForm records a new interaction against a client.
type ActivityForm struct {
	*tview.Flex
	theme    *ui.Theme
	form     *tview.Form
	errText  *tview.TextView
	clientID string
	onSubmit func(clientID string, in directory.ActivityInput)
	onCancel func()
}

// NewActivityForm creates the activity form.
func NewActivityForm(theme *ui.Theme) *ActivityForm {
	af := &ActivityForm{theme: theme}

	types := directory.ActivityTypes()
	options := make([]string, len(types))
	for i, t := range types {
		options[i] = string(t)
	}

	form := tview.NewForm().
		AddDropDown("Type", options, 0, nil).
		AddInputField("Title", "", 40, nil, nil).
		AddInputField("Description", "", 40, nil, nil)
	form.SetBorder(true)
	form.SetTitle(" New Activity ")
	form.SetTitleColor(theme.TitleColor)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.FgColor)
	form.SetButtonBackgroundColor(theme.BorderColor)
	form.AddButton("Save", func() { af.submit() })
	form.AddButton("Cancel", func() {
		if af.onCancel != nil {
			af.onCancel()
		}
	})

	errText := tview.NewTextView().
		SetDynamicColors(true)
	errText.SetBackgroundColor(theme.BgColor)

	af.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(errText, 3, 0, false)
	af.form = form
	af.errText = errText
	return af
}

// Name implements Component.
func (af *ActivityForm) Name() string { return "Activity" }

// Init implements Component.
func (af *ActivityForm) Init() {}

// Start implements Component.
func (af *ActivityForm) Start() {}

// Stop implements Component.
func (af *ActivityForm) Stop() {}

// Hints implements Component.
func (af *ActivityForm) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// SetOnSubmit sets the callback for a validated submission.
func (af *ActivityForm) SetOnSubmit(fn func(clientID string, in directory.ActivityInput)) {
	af.onSubmit = fn
}

// SetOnCancel sets the callback when the form is abandoned.
func (af *ActivityForm) SetOnCancel(fn func()) {
	af.onCancel = fn
}

// Reset prepares the form for the given client.
func (af *ActivityForm) Reset(clientID, clientName string) {
	af.clientID = clientID
	af.form.SetTitle(fmt.Sprintf(" New Activity - %s ", clientName))
	af.form.GetFormItem(0).(*tview.DropDown).SetCurrentOption(0)
	af.form.GetFormItem(1).(*tview.InputField).SetText("")
	af.form.GetFormItem(2).(*tview.InputField).SetText("")
	af.errText.Clear()
	af.form.SetFocus(0)
}

func (af *ActivityForm) submit() {
	_, selected := af.form.GetFormItem(0).(*tview.DropDown).GetCurrentOption()
	in := directory.ActivityInput{
		Type:        directory.ActivityType(selected),
		Title:       af.form.GetFormItem(1).(*tview.InputField).GetText(),
		Description: af.form.GetFormItem(2).(*tview.InputField).GetText(),
	}

	if err := validate.Activity(in); err != nil {
		var errs validate.Errors
		if errors.As(err, &errs) {
			af.showFieldErrors(errs)
		}
		return
	}
	af.errText.Clear()
	if af.onSubmit != nil {
		af.onSubmit(af.clientID, in)
	}
}

func (af *ActivityForm) showFieldErrors(errs validate.Errors) {
	af.errText.Clear()
	color := colorName(af.theme.FlashErrColor)
	for _, fe := range errs {
		_, _ = fmt.Fprintf(af.errText, " [%s]%s[-]\n", color, fe.Message)
	}
}
