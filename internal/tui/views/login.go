package views

import (
	"errors"
	"fmt"

	"github.com/rivo/tview"

	"github.com/gaillardy/crm/internal/tui/ui"
	"github.com/gaillardy/crm/internal/validate"
)

// LoginView is the entry form shown while no session is active. Any
// well-formed credentials are accepted; the form only gates on shape.
type LoginView struct {
	*tview.Flex
	theme    *ui.Theme
	form     *tview.Form
	errText  *tview.TextView
	onSubmit func(email, password string)
	busy     bool
}

// NewLoginView creates the login form.
func NewLoginView(theme *ui.Theme) *LoginView {
	lv := &LoginView{theme: theme}

	form := tview.NewForm().
		AddInputField("Email", "", 40, nil, nil).
		AddPasswordField("Password", "", 40, '*', nil)
	form.SetBorder(true)
	form.SetTitle(" Sign In ")
	form.SetTitleColor(theme.TitleColor)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.FgColor)
	form.SetButtonBackgroundColor(theme.BorderColor)
	form.AddButton("Sign In", func() { lv.submit() })

	errText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	errText.SetBackgroundColor(theme.BgColor)

	hint := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	hint.SetBackgroundColor(theme.BgColor)
	_, _ = fmt.Fprintf(hint, "[%s]Demo mode: any email and a password of 6+ characters[-]",
		colorName(theme.CounterColor))

	inner := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox().SetBackgroundColor(theme.BgColor), 0, 1, false).
		AddItem(form, 9, 0, true).
		AddItem(errText, 2, 0, false).
		AddItem(hint, 1, 0, false).
		AddItem(tview.NewBox().SetBackgroundColor(theme.BgColor), 0, 1, false)

	lv.Flex = tview.NewFlex().
		AddItem(tview.NewBox().SetBackgroundColor(theme.BgColor), 0, 1, false).
		AddItem(inner, 50, 0, true).
		AddItem(tview.NewBox().SetBackgroundColor(theme.BgColor), 0, 1, false)
	lv.form = form
	lv.errText = errText
	return lv
}

// Name implements Component.
func (lv *LoginView) Name() string { return "Login" }

// Init implements Component.
func (lv *LoginView) Init() {}

// Start implements Component.
func (lv *LoginView) Start() {
	lv.SetBusy(false)
	lv.errText.Clear()
}

// Stop implements Component.
func (lv *LoginView) Stop() {}

// Hints implements Component.
func (lv *LoginView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
	}
}

// SetOnSubmit sets the callback invoked with validated credentials.
func (lv *LoginView) SetOnSubmit(fn func(email, password string)) {
	lv.onSubmit = fn
}

// SetBusy toggles the submitting state. While busy, further submits are
// ignored and the button reads as pending.
func (lv *LoginView) SetBusy(busy bool) {
	lv.busy = busy
	btn := lv.form.GetButton(0)
	if busy {
		btn.SetLabel("Signing in...")
	} else {
		btn.SetLabel("Sign In")
	}
}

// ShowError renders a submit failure under the form.
func (lv *LoginView) ShowError(msg string) {
	lv.errText.Clear()
	_, _ = fmt.Fprintf(lv.errText, "[%s]%s[-]", colorName(lv.theme.FlashErrColor), msg)
}

func (lv *LoginView) submit() {
	if lv.busy {
		return
	}
	email := lv.form.GetFormItem(0).(*tview.InputField).GetText()
	password := lv.form.GetFormItem(1).(*tview.InputField).GetText()

	if err := validate.Login(email, password); err != nil {
		var errs validate.Errors
		if errors.As(err, &errs) {
			lv.showFieldErrors(errs)
		}
		return
	}
	lv.errText.Clear()
	if lv.onSubmit != nil {
		lv.onSubmit(email, password)
	}
}

func (lv *LoginView) showFieldErrors(errs validate.Errors) {
	lv.errText.Clear()
	color := colorName(lv.theme.FlashErrColor)
	for i, fe := range errs {
		if i > 0 {
			_, _ = fmt.Fprint(lv.errText, "\n")
		}
		_, _ = fmt.Fprintf(lv.errText, "[%s]%s[-]", color, fe.Message)
	}
}
