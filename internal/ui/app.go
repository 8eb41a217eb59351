package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"tcm/internal/actions"
	"tcm/internal/config"
	"tcm/internal/storage"
	"tcm/internal/store"
)

const (
	pageMain    = "main"
	pageForm    = "form"
	pageConfirm = "confirm"
	pageMessage = "message"
)

// section is one of the top-level views switched with 1/2/3 or Tab
type section interface {
	name() string
	title() string
	root() tview.Primitive
	focus() tview.Primitive
	help() string
	// load fetches the data the section shows
	load()
	render(st store.State)
	applyTheme(t Theme)
}

// App is the interactive client
type App struct {
	app      *tview.Application
	actions  *actions.Actions
	prefs    storage.Storage
	cfg      *config.Config
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	overlay  *tview.Pages
	content  *tview.Pages
	tabs     *tview.TextView
	help     *tview.TextView
	layout   *tview.Flex
	sections []section
	current  int
	loaded   map[string]bool
	state    store.State
	theme    Theme
	darkMode bool

	inflight sync.WaitGroup
}

// NewApp builds the interactive client. Call Run to start it.
func NewApp(cfg *config.Config, acts *actions.Actions, prefs storage.Storage, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		app:     tview.NewApplication(),
		actions: acts,
		prefs:   prefs,
		cfg:     cfg,
		logger:  logger.Named("ui"),
		ctx:     ctx,
		cancel:  cancel,
		overlay: tview.NewPages(),
		content: tview.NewPages(),
		loaded:  make(map[string]bool),
		state:   acts.Store().State(),
	}

	p, err := prefs.Load()
	if err != nil {
		a.logger.Warn("Failed to load preferences", zap.Error(err))
	}
	a.darkMode = p.DarkMode
	a.theme = ThemeFor(a.darkMode)
	tview.Styles = a.theme.Styles()

	a.tabs = tview.NewTextView().SetDynamicColors(true)
	a.help = tview.NewTextView().SetDynamicColors(true)
	a.sections = []section{
		newDashboardSection(a),
		newTestCasesSection(a, cfg.PageSize),
		newTestSuitesSection(a, cfg.PageSize),
	}
	for _, s := range a.sections {
		a.content.AddPage(s.name(), s.root(), true, false)
	}

	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.tabs, 1, 0, false).
		AddItem(a.content, 0, 1, true).
		AddItem(a.help, 1, 0, false)
	a.overlay.AddPage(pageMain, a.layout, true, true)

	a.app.SetInputCapture(a.handleGlobalKey)
	acts.SetNotifier(&modalNotifier{app: a})
	return a
}

// Run blocks until the user quits. In-flight requests are cancelled on exit.
func (a *App) Run() error {
	unsubscribe := a.actions.Store().Subscribe(func(st store.State) {
		a.queue(func() {
			a.state = st
			for _, s := range a.sections {
				s.render(st)
			}
		})
	})

	a.applyTheme()
	a.showSection(0)

	err := a.app.SetRoot(a.overlay, true).Run()
	a.cancel()
	unsubscribe()
	a.inflight.Wait()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// async runs an action off the UI goroutine with the app's context
func (a *App) async(fn func(ctx context.Context)) {
	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		fn(a.ctx)
	}()
}

// queue runs f on the UI goroutine and redraws. Once the app has stopped
// the event loop no longer answers, so queue gives up instead of blocking.
func (a *App) queue(f func()) {
	if a.ctx.Err() != nil {
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.app.QueueUpdateDraw(func() {
			if a.ctx.Err() == nil {
				f()
			}
		})
	}()
	select {
	case <-done:
	case <-a.ctx.Done():
	}
}

func (a *App) showSection(i int) {
	a.current = i
	s := a.sections[i]
	a.content.SwitchToPage(s.name())
	a.updateTabs()
	a.setHelp(s.help())
	s.render(a.state)
	a.app.SetFocus(s.focus())
	if !a.loaded[s.name()] {
		a.loaded[s.name()] = true
		s.load()
	}
}

func (a *App) updateTabs() {
	var b strings.Builder
	for i, s := range a.sections {
		if i == a.current {
			fmt.Fprintf(&b, " [::r] %d %s [::-]", i+1, s.title())
		} else {
			fmt.Fprintf(&b, "  %d %s ", i+1, s.title())
		}
	}
	a.tabs.SetText(b.String())
}

func (a *App) setHelp(text string) {
	a.help.SetText(" " + text + "  [::d]t theme  r refresh  q quit[::-]")
}

// modalOpen reports whether a form, confirmation or message has the focus
func (a *App) modalOpen() bool {
	name, _ := a.overlay.GetFrontPage()
	return name != pageMain
}

func (a *App) handleGlobalKey(event *tcell.EventKey) *tcell.EventKey {
	if a.modalOpen() {
		return event
	}
	if _, typing := a.app.GetFocus().(*tview.InputField); typing {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		a.showSection((a.current + 1) % len(a.sections))
		return nil
	case tcell.KeyBacktab:
		a.showSection((a.current + len(a.sections) - 1) % len(a.sections))
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case '1', '2', '3':
			a.showSection(int(event.Rune() - '1'))
			return nil
		case 't':
			a.toggleTheme()
			return nil
		case 'r':
			a.sections[a.current].load()
			return nil
		case 'q':
			a.cancel()
			a.app.Stop()
			return nil
		}
	}
	return event
}

func (a *App) toggleTheme() {
	dark, err := storage.ToggleDarkMode(a.prefs)
	if err != nil {
		a.logger.Error("Failed to save preferences", zap.Error(err))
		a.showMessage("Error", "Failed to save the theme preference.")
		return
	}
	a.darkMode = dark
	a.theme = ThemeFor(dark)
	tview.Styles = a.theme.Styles()
	a.applyTheme()
	for _, s := range a.sections {
		s.render(a.state)
	}
}

func (a *App) applyTheme() {
	t := a.theme
	a.tabs.SetBackgroundColor(t.Contrast)
	a.tabs.SetTextColor(t.Text)
	a.help.SetBackgroundColor(t.Contrast)
	a.help.SetTextColor(t.Secondary)
	a.layout.SetBackgroundColor(t.Background)
	for _, s := range a.sections {
		s.applyTheme(t)
	}
}

// center places p in the middle of the screen
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// restoreFocus gives the focus back to the topmost remaining page
func (a *App) restoreFocus() {
	name, item := a.overlay.GetFrontPage()
	if name == pageMain || item == nil {
		a.app.SetFocus(a.sections[a.current].focus())
		return
	}
	a.app.SetFocus(item)
}

func (a *App) showForm(form tview.Primitive, height int) {
	a.overlay.AddPage(pageForm, center(form, 70, height), true, true)
	a.app.SetFocus(form)
}

func (a *App) closeForm() {
	a.overlay.RemovePage(pageForm)
	a.restoreFocus()
}

// confirm asks a yes/no question. Exactly one of onYes and onNo runs.
func (a *App) confirm(text, yesLabel string, onYes, onNo func()) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{yesLabel, "Cancel"}).
		SetDoneFunc(func(index int, _ string) {
			a.overlay.RemovePage(pageConfirm)
			a.restoreFocus()
			if index == 0 {
				onYes()
				return
			}
			onNo()
		})
	a.overlay.AddPage(pageConfirm, modal, false, true)
	a.app.SetFocus(modal)
}

// showMessage must run on the UI goroutine
func (a *App) showMessage(title, message string) {
	modal := tview.NewModal().
		SetText(title + "\n\n" + message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			a.overlay.RemovePage(pageMessage)
			a.restoreFocus()
		})
	if title == "Success" {
		modal.SetBackgroundColor(tcell.ColorDarkGreen)
	} else {
		modal.SetBackgroundColor(tcell.ColorDarkRed)
	}
	a.overlay.AddPage(pageMessage, modal, false, true)
	a.app.SetFocus(modal)
}

// modalNotifier shows action notifications as modals
type modalNotifier struct {
	app *App
}

func (n *modalNotifier) Error(title, message string) {
	n.app.queue(func() { n.app.showMessage(title, message) })
}

func (n *modalNotifier) Success(message string) {
	n.app.queue(func() { n.app.showMessage("Success", message) })
}
