package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/gaillardy/crm/internal/bus"
	"github.com/gaillardy/crm/internal/config"
	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/profile"
	"github.com/gaillardy/crm/internal/tui/keys"
	"github.com/gaillardy/crm/internal/tui/model"
	"github.com/gaillardy/crm/internal/tui/ui"
	"github.com/gaillardy/crm/internal/tui/views"
)

// Page names on the navigation stack.
const (
	pageLogin     = "login"
	pageDashboard = "dashboard"
	pageClients   = "clients"
	pageDetail    = "detail"
	pageForm      = "form"
	pageActivity  = "activity"
	pageQR        = "qr"
	pageSettings  = "settings"
	pageHelp      = "help"
	pageConfirm   = "confirm"
)

// Params carries the app's collaborators.
type Params struct {
	Profile string
	Version string
	Config  *config.Config
	VM      *model.ViewModel
	Bus     *bus.Bus
	Logger  *zap.Logger
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	pages    *ui.Pages
	registry *keys.Registry
	vm       *model.ViewModel
	bus      *bus.Bus
	cfg      *config.Config
	logger   *zap.Logger
	profile  string
	version  string

	logo        *ui.Logo
	profileInfo *ui.ProfileInfo
	menu        *ui.Menu
	crumbs      *ui.Crumbs
	flash       *ui.FlashModel
	flashBar    *ui.FlashBar
	prompt      *ui.Prompt
	statusBar   *views.StatusBar

	login        *views.LoginView
	dashboard    *views.Dashboard
	clientList   *views.ClientList
	clientDetail *views.ClientDetail
	clientForm   *views.ClientForm
	activityForm *views.ActivityForm
	qrCard       *views.QRCard
	settings     *views.Settings
	help         *views.HelpView
	confirm      *tview.Modal

	components map[string]ui.Component
	root       *tview.Flex

	tagCursor int // -1 = no tag filter

	startedAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(p Params) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.ThemeByName(p.Config.Theme)

	a := &App{
		app:       tview.NewApplication(),
		theme:     theme,
		pages:     ui.NewPages(),
		registry:  keys.NewRegistry(),
		vm:        p.VM,
		bus:       p.Bus,
		cfg:       p.Config,
		logger:    p.Logger,
		profile:   p.Profile,
		version:   p.Version,
		tagCursor: -1,
		startedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.logo = ui.NewLogo(theme)
	a.profileInfo = ui.NewProfileInfo(theme)
	a.menu = ui.NewMenu(theme)
	a.crumbs = ui.NewCrumbs(theme)
	a.flash = ui.NewFlashModel()
	a.flashBar = ui.NewFlashBar(theme)
	a.prompt = ui.NewPrompt(theme)
	a.statusBar = views.NewStatusBar(theme)

	a.login = views.NewLoginView(theme)
	a.dashboard = views.NewDashboard(theme)
	a.clientList = views.NewClientList(theme)
	a.clientDetail = views.NewClientDetail(theme)
	a.clientForm = views.NewClientForm(theme)
	a.activityForm = views.NewActivityForm(theme)
	a.qrCard = views.NewQRCard(theme)
	a.settings = views.NewSettings(theme)
	a.help = views.NewHelpView(theme)

	a.components = map[string]ui.Component{
		pageLogin:     a.login,
		pageDashboard: a.dashboard,
		pageClients:   a.clientList,
		pageDetail:    a.clientDetail,
		pageForm:      a.clientForm,
		pageActivity:  a.activityForm,
		pageQR:        a.qrCard,
		pageSettings:  a.settings,
		pageHelp:      a.help,
	}

	a.statusBar.SetProfile(p.Profile)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Label: ":", Description: "Command", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Label: "?", Description: "Help", Visible: true,
		Handler: func() { a.openHelp() },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Label: "q", Description: "Back/Quit", Visible: true,
		Handler: func() { a.back() },
	})

	a.registry.AddView(pageDashboard, &keys.Action{
		Rune: 'c', Key: tcell.KeyRune,
		Handler: func() { a.goClients() },
	})

	a.registry.AddView(pageClients, &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Handler: func() { a.openAddForm() },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: 'd', Key: tcell.KeyRune,
		Handler: func() {
			if id := a.clientList.SelectedClient(); id != "" {
				a.confirmDelete(id)
			}
		},
	})
	a.registry.AddView(pageClients, &keys.Action{
		Key: tcell.KeyCtrlD,
		Handler: func() {
			if id := a.clientList.SelectedClient(); id != "" {
				a.confirmDelete(id)
			}
		},
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Handler: func() { a.cycleTagFilter() },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: '0', Key: tcell.KeyRune,
		Handler: func() { a.clearFilters() },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: 's', Key: tcell.KeyRune,
		Handler: func() { a.cycleSortField() },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: 'o', Key: tcell.KeyRune,
		Handler: func() { a.flipSortOrder() },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: 'h', Key: tcell.KeyRune,
		Handler: func() { a.turnPage(-1) },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: 'l', Key: tcell.KeyRune,
		Handler: func() { a.turnPage(1) },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: '[', Key: tcell.KeyRune,
		Handler: func() { a.turnPage(-1) },
	})
	a.registry.AddView(pageClients, &keys.Action{
		Rune: ']', Key: tcell.KeyRune,
		Handler: func() { a.turnPage(1) },
	})

	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'a', Key: tcell.KeyRune,
		Handler: func() { a.openActivityForm() },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'e', Key: tcell.KeyRune,
		Handler: func() { a.openEditForm() },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Rune: 'c', Key: tcell.KeyRune,
		Handler: func() { a.openQRCard() },
	})
	a.registry.AddView(pageDetail, &keys.Action{
		Key: tcell.KeyCtrlD,
		Handler: func() {
			if id := a.clientDetail.ClientID(); id != "" {
				a.confirmDelete(id)
			}
		},
	})

	a.registry.AddView(pageSettings, &keys.Action{
		Rune: 't', Key: tcell.KeyRune,
		Handler: func() { a.toggleTheme() },
	})
}

func (a *App) setupCallbacks() {
	a.login.SetOnSubmit(func(email, password string) {
		a.login.SetBusy(true)
		go func() {
			time.Sleep(a.latency())
			err := a.vm.Sessions().Login(email, password)
			a.app.QueueUpdateDraw(func() {
				a.login.SetBusy(false)
				if err != nil {
					a.login.ShowError(err.Error())
					return
				}
				a.vm.Reload()
				a.flash.Info("Signed in as " + email)
				a.goDashboard()
			})
		}()
	})

	a.dashboard.SetOnOpen(func(id string) { a.openClient(id) })
	a.clientList.SetOnSelect(func(id string) { a.openClient(id) })

	a.clientForm.SetOnSubmit(func(editID string, in directory.ClientInput) {
		go func() {
			time.Sleep(a.latency())
			var flash string
			var err error
			if editID == "" {
				var c directory.Client
				c, err = a.vm.Directory().AddClient(in)
				flash = "Client added: " + c.FullName()
			} else {
				update := directory.ClientUpdate{
					FirstName: &in.FirstName,
					LastName:  &in.LastName,
					Email:     &in.Email,
					Phone:     &in.Phone,
					Company:   &in.Company,
					Position:  &in.Position,
					Notes:     &in.Notes,
					Tags:      &in.Tags,
				}
				err = a.vm.Directory().UpdateClient(editID, update)
				flash = "Client updated"
			}
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flash.Err(err)
					return
				}
				a.vm.Reload()
				a.flash.Info(flash)
				a.pages.Pop()
				a.refreshCurrent()
			})
		}()
	})
	a.clientForm.SetOnCancel(func() {
		a.pages.Pop()
		a.refreshCurrent()
	})

	a.activityForm.SetOnSubmit(func(clientID string, in directory.ActivityInput) {
		if _, err := a.vm.Directory().AddActivity(clientID, in); err != nil {
			a.flash.Err(err)
			return
		}
		a.vm.Reload()
		a.flash.Info("Activity recorded")
		a.pages.Pop()
		a.refreshCurrent()
	})
	a.activityForm.SetOnCancel(func() {
		a.pages.Pop()
		a.refreshCurrent()
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.dispatch(ParseCommand(text))
		case ui.PromptFilter:
			a.setSearch(text)
		}
	})
	a.prompt.SetOnCancel(func() {
		if a.prompt.Mode() == ui.PromptFilter {
			a.setSearch("")
		}
		a.hidePrompt()
	})
	a.prompt.SetOnChange(func(mode ui.PromptMode, text string) {
		if mode == ui.PromptFilter {
			a.setSearch(text)
		}
	})

	a.pages.SetOnChange(func(stack []string) {
		var names []string
		for _, page := range stack {
			if c, ok := a.components[page]; ok {
				names = append(names, c.Name())
			}
		}
		a.crumbs.Update(names)
		if c, ok := a.components[a.pages.Current()]; ok {
			a.menu.Update(append(c.Hints(), a.registry.Hints("")...))
		}
	})
}

func (a *App) setupLayout() {
	for name, c := range a.components {
		a.pages.AddPage(name, c.(tview.Primitive), true, false)
		c.Init()
	}

	a.confirm = tview.NewModal()
	a.confirm.SetBackgroundColor(a.theme.BgColor)
	a.confirm.SetTextColor(a.theme.FgColor)
	a.confirm.SetButtonBackgroundColor(a.theme.BorderColor)
	a.pages.AddPage(pageConfirm, a.confirm, true, false)

	header := tview.NewFlex().
		AddItem(a.logo, 16, 0, false).
		AddItem(a.profileInfo, 0, 1, false).
		AddItem(a.menu, 0, 2, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 6, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.handleKey)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		a.app.Stop()
		return nil
	}

	current := a.pages.Current()
	focused := a.app.GetFocus()

	// The prompt owns the keyboard while visible.
	if focused == tview.Primitive(a.prompt) || focused == a.prompt.InputField {
		return event
	}

	if event.Key() == tcell.KeyEscape {
		switch current {
		case pageLogin, pageDashboard, pageConfirm:
			return event
		case pageForm, pageActivity:
			// Abandon the form without saving.
			a.pages.Pop()
			a.refreshCurrent()
			return nil
		default:
			if a.pages.Depth() > 1 {
				a.pages.Pop()
				a.refreshCurrent()
				return nil
			}
			return event
		}
	}

	// Let text input widgets handle all other keys normally.
	switch focused.(type) {
	case *tview.InputField, *tview.DropDown, *tview.Button:
		return event
	}

	if a.registry.HandleEvent(current, event) {
		return nil
	}
	return event
}

// dispatch routes a parsed ':' command.
func (a *App) dispatch(cmd Command) {
	if !a.vm.Sessions().Authenticated() && cmd.Name != "quit" {
		a.flash.Warn("Sign in first")
		return
	}

	switch cmd.Name {
	case "dashboard":
		a.goDashboard()
	case "clients":
		a.goClients()
	case "client":
		if cmd.Args == "" {
			a.flash.Warn("Usage: client <id>")
			return
		}
		a.openClient(cmd.Args)
	case "add":
		a.openAddForm()
	case "settings":
		a.openSettings()
	case "logout":
		a.logout()
	case "help":
		a.openHelp()
	case "quit":
		a.app.Stop()
	default:
		a.flash.Warn("Unknown command: " + cmd.Name)
	}
}

// Navigation.

func (a *App) goLogin() {
	a.switchTo(pageLogin, func() { a.pages.Reset(pageLogin) })
	a.app.SetFocus(a.login)
}

func (a *App) goDashboard() {
	a.switchTo(pageDashboard, func() { a.pages.Reset(pageDashboard) })
	a.dashboard.Update(a.vm.Stats())
	a.app.SetFocus(a.dashboard)
}

func (a *App) goClients() {
	if a.pages.Current() == pageClients {
		return
	}
	a.switchTo(pageClients, func() {
		a.pages.Reset(pageDashboard)
		a.pages.Push(pageClients)
	})
	a.clientList.Update(a.vm.Projection(), a.vm.Directory().CurrentQuery())
	a.app.SetFocus(a.clientList.Table())
}

func (a *App) openClient(id string) {
	c, ok := a.vm.Directory().Get(id)
	if !ok {
		a.flash.Warn("No client with id " + id)
		return
	}
	a.clientDetail.Update(c)
	a.switchTo(pageDetail, func() { a.pages.Push(pageDetail) })
	a.app.SetFocus(a.clientDetail)
}

func (a *App) openAddForm() {
	a.clientForm.Reset()
	a.switchTo(pageForm, func() { a.pages.Push(pageForm) })
	a.app.SetFocus(a.clientForm)
}

func (a *App) openEditForm() {
	c, ok := a.vm.Directory().Get(a.clientDetail.ClientID())
	if !ok {
		return
	}
	a.clientForm.SetClient(c)
	a.switchTo(pageForm, func() { a.pages.Push(pageForm) })
	a.app.SetFocus(a.clientForm)
}

func (a *App) openActivityForm() {
	c, ok := a.vm.Directory().Get(a.clientDetail.ClientID())
	if !ok {
		return
	}
	a.activityForm.Reset(c.ID, c.FullName())
	a.switchTo(pageActivity, func() { a.pages.Push(pageActivity) })
	a.app.SetFocus(a.activityForm)
}

func (a *App) openQRCard() {
	c, ok := a.vm.Directory().Get(a.clientDetail.ClientID())
	if !ok {
		return
	}
	a.qrCard.Update(c)
	a.switchTo(pageQR, func() { a.pages.Push(pageQR) })
	a.app.SetFocus(a.qrCard)
}

func (a *App) openSettings() {
	a.settings.Update(views.SettingsData{
		Profile:      a.profile,
		Theme:        a.cfg.Theme,
		ItemsPerPage: a.cfg.ItemsPerPage,
		DBPath:       profile.DBPath(a.profile),
		LogPath:      profile.LogPath(a.profile),
		ConfigPath:   profile.ConfigPath(),
		Version:      a.version,
		Clients:      a.vm.Stats().TotalClients,
		Activities:   a.vm.Stats().TotalActivities,
	})
	a.switchTo(pageSettings, func() { a.pages.Push(pageSettings) })
	a.app.SetFocus(a.settings)
}

func (a *App) openHelp() {
	if a.pages.Current() == pageHelp {
		return
	}
	a.switchTo(pageHelp, func() { a.pages.Push(pageHelp) })
	a.app.SetFocus(a.help)
}

func (a *App) back() {
	if a.pages.Depth() > 1 {
		a.pages.Pop()
		a.refreshCurrent()
		return
	}
	a.app.Stop()
}

// switchTo stops the current component, runs the stack mutation and
// starts the new one.
func (a *App) switchTo(page string, mutate func()) {
	if c, ok := a.components[a.pages.Current()]; ok {
		c.Stop()
	}
	mutate()
	if c, ok := a.components[page]; ok {
		c.Start()
	}
}

func (a *App) logout() {
	if err := a.vm.Sessions().Logout(); err != nil {
		a.flash.Err(err)
		return
	}
	a.vm.Reload()
	a.flash.Info("Signed out")
	a.goLogin()
}

func (a *App) confirmDelete(id string) {
	c, ok := a.vm.Directory().Get(id)
	if !ok {
		return
	}
	a.confirm.SetText(fmt.Sprintf("Delete %s?\nThis removes the client and all activities.", c.FullName())).
		ClearButtons().
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.Pop()
			if buttonLabel == "Delete" {
				if err := a.vm.Directory().DeleteClient(id); err != nil {
					a.flash.Err(err)
				} else {
					a.vm.Reload()
					a.flash.Info("Client deleted")
					if a.pages.Current() == pageDetail {
						a.pages.Pop()
					}
				}
			}
			a.refreshCurrent()
		})
	a.pages.Push(pageConfirm)
	a.app.SetFocus(a.confirm)
}

// Query state helpers.

func (a *App) setSearch(term string) {
	if err := a.vm.Directory().SetSearchTerm(term); err != nil {
		a.flash.Err(err)
		return
	}
	a.vm.Reload()
	a.refreshCurrent()
}

func (a *App) cycleTagFilter() {
	tags := a.vm.Tags()
	if len(tags) == 0 {
		return
	}
	a.tagCursor++
	var selected []string
	if a.tagCursor >= len(tags) {
		a.tagCursor = -1
	} else {
		selected = []string{tags[a.tagCursor]}
	}
	if err := a.vm.Directory().SetSelectedTags(selected); err != nil {
		a.flash.Err(err)
		return
	}
	a.vm.Reload()
	a.refreshCurrent()
}

func (a *App) clearFilters() {
	a.tagCursor = -1
	if err := a.vm.Directory().SetSelectedTags(nil); err != nil {
		a.flash.Err(err)
		return
	}
	a.setSearch("")
}

func (a *App) cycleSortField() {
	var next directory.SortField
	switch a.vm.Directory().CurrentQuery().SortBy {
	case directory.SortByName:
		next = directory.SortByEmail
	case directory.SortByEmail:
		next = directory.SortByCreated
	default:
		next = directory.SortByName
	}
	if err := a.vm.Directory().SetSortBy(next); err != nil {
		a.flash.Err(err)
		return
	}
	a.vm.Reload()
	a.refreshCurrent()
}

func (a *App) flipSortOrder() {
	order := directory.SortAsc
	if a.vm.Directory().CurrentQuery().SortOrder == directory.SortAsc {
		order = directory.SortDesc
	}
	if err := a.vm.Directory().SetSortOrder(order); err != nil {
		a.flash.Err(err)
		return
	}
	a.vm.Reload()
	a.refreshCurrent()
}

func (a *App) turnPage(delta int) {
	p := a.vm.Projection()
	next := p.Page + delta
	if next < 1 || next > max(p.TotalPages, 1) {
		return
	}
	if err := a.vm.Directory().SetCurrentPage(next); err != nil {
		a.flash.Err(err)
		return
	}
	a.vm.Reload()
	a.refreshCurrent()
}

func (a *App) toggleTheme() {
	if a.cfg.Theme == "light" {
		a.cfg.Theme = "dark"
	} else {
		a.cfg.Theme = "light"
	}
	if err := config.Save(profile.ConfigPath(), a.cfg); err != nil {
		a.flash.Err(err)
		return
	}
	a.flash.Info("Theme set to " + a.cfg.Theme + ", restart to apply")
	a.openSettings()
}

// Prompt handling.

func (a *App) showPrompt(mode ui.PromptMode) {
	if mode == ui.PromptFilter && a.pages.Current() != pageClients {
		return
	}
	a.prompt.Activate(mode)
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.refreshCurrent()
	a.focusCurrent()
}

func (a *App) focusCurrent() {
	switch a.pages.Current() {
	case pageClients:
		a.app.SetFocus(a.clientList.Table())
	default:
		if c, ok := a.components[a.pages.Current()]; ok {
			a.app.SetFocus(c.(tview.Primitive))
		}
	}
}

// refreshCurrent re-renders the visible page from the cached snapshots.
func (a *App) refreshCurrent() {
	switch a.pages.Current() {
	case pageDashboard:
		a.dashboard.Update(a.vm.Stats())
	case pageClients:
		a.clientList.Update(a.vm.Projection(), a.vm.Directory().CurrentQuery())
	case pageDetail:
		if c, ok := a.vm.Directory().Get(a.clientDetail.ClientID()); ok {
			a.clientDetail.Update(c)
		}
	}

	stats := a.vm.Stats()
	identity, loggedIn := a.vm.Identity()
	user := ""
	if loggedIn {
		user = identity.Email
	}
	a.statusBar.SetUser(user)
	a.profileInfo.Update(&ui.ProfileData{
		Profile:    a.profile,
		User:       user,
		Clients:    stats.TotalClients,
		Activities: stats.TotalActivities,
		Uptime:     time.Since(a.startedAt),
	})
	a.flashBar.Update(a.flash.GetMessage())
}

func (a *App) latency() time.Duration {
	return time.Duration(a.cfg.SimulatedLatencyMS) * time.Millisecond
}

// Run starts the TUI application.
func (a *App) Run() error {
	if a.vm.Sessions().Authenticated() {
		a.goDashboard()
	} else {
		a.goLogin()
	}
	a.refreshCurrent()
	a.startEventLoop()
	return a.app.Run()
}

// startEventLoop redraws on store events, flash changes and the clock.
func (a *App) startEventLoop() {
	events, unsub := a.bus.Subscribe("", 16)
	ticker := time.NewTicker(10 * time.Second)

	go func() {
		defer unsub()
		defer ticker.Stop()
		for {
			select {
			case evt := <-events:
				a.logger.Debug("bus event", zap.String("kind", evt.Kind))
				a.vm.Reload()
				a.app.QueueUpdateDraw(a.refreshCurrent)
			case <-a.flash.Watch():
				a.app.QueueUpdateDraw(func() {
					a.flashBar.Update(a.flash.GetMessage())
				})
			case <-ticker.C:
				a.app.QueueUpdateDraw(a.refreshCurrent)
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
