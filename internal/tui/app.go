package tui

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/dmolina/promptbox/internal/config"
	"github.com/dmolina/promptbox/internal/render"
	"github.com/dmolina/promptbox/internal/services"
)

// Tab page names, in display order
const (
	pageInbox   = "inbox"
	pageDetail  = "detail"
	pagePrompts = "prompts"
	pageChat    = "chat"
)

var pageOrder = []string{pageInbox, pageDetail, pagePrompts, pageChat}

// App encapsulates the terminal UI and the backing services
type App struct {
	*tview.Application

	Pages  *tview.Pages
	Config *config.Config

	gateway  services.LLMGateway
	pipeline services.PipelineService
	agent    services.AgentService
	inboxSvc services.InboxService
	prompts  services.PromptService

	session  *services.SessionState
	renderer *render.EmailRenderer

	ctx    context.Context
	cancel context.CancelFunc

	views   map[string]tview.Primitive
	current int // index into pageOrder

	// endpointDown is set once by the startup reachability check; touched
	// only on the UI goroutine after that.
	endpointDown bool

	logger  *log.Logger
	logFile *os.File
}

// NewApp creates the TUI application wired to the given services
func NewApp(cfg *config.Config, gateway services.LLMGateway, pipeline services.PipelineService,
	agent services.AgentService, inboxSvc services.InboxService, prompts services.PromptService) *App {

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Application: tview.NewApplication(),
		Pages:       tview.NewPages(),
		Config:      cfg,
		gateway:     gateway,
		pipeline:    pipeline,
		agent:       agent,
		inboxSvc:    inboxSvc,
		prompts:     prompts,
		session:     services.NewSessionState(),
		renderer:    render.NewEmailRenderer(),
		ctx:         ctx,
		cancel:      cancel,
		views:       make(map[string]tview.Primitive),
	}

	a.initLogger()
	a.initViews()
	a.initKeys()
	return a
}

// Run loads the inbox and starts the event loop
func (a *App) Run() error {
	defer a.closeLogger()
	defer a.cancel()

	a.reloadInbox()
	go a.checkEndpoint()

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.tabBar(), 1, 0, false).
		AddItem(a.Pages, 0, 1, true).
		AddItem(a.statusView(), 1, 0, false)

	a.switchToPage(0)
	return a.SetRoot(root, true).EnableMouse(true).Run()
}

// reloadInbox re-reads the record file into the session
func (a *App) reloadInbox() {
	inbox := a.inboxSvc.Load()
	a.session.SetInbox(inbox)
	if a.logger != nil {
		a.logger.Printf("loaded %d emails from %s", inbox.Len(), a.Config.Inbox)
	}
	a.refreshInboxList()
	a.refreshDetail()
}

func (a *App) initViews() {
	a.views["status"] = a.buildStatusView()
	a.Pages.AddPage(pageInbox, a.buildInboxView(), true, true)
	a.Pages.AddPage(pageDetail, a.buildDetailView(), true, false)
	a.Pages.AddPage(pagePrompts, a.buildPromptsView(), true, false)
	a.Pages.AddPage(pageChat, a.buildChatView(), true, false)
}

// initKeys installs global key handling: Ctrl navigation works everywhere,
// including inside input fields.
func (a *App) initKeys() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlN:
			a.switchToPage((a.current + 1) % len(pageOrder))
			return nil
		case tcell.KeyCtrlP:
			a.switchToPage((a.current + len(pageOrder) - 1) % len(pageOrder))
			return nil
		case tcell.KeyCtrlQ:
			a.Stop()
			return nil
		}
		return event
	})
}

func (a *App) switchToPage(idx int) {
	a.current = idx
	name := pageOrder[idx]
	a.Pages.SwitchToPage(name)
	a.updateTabBar()

	switch name {
	case pageDetail:
		a.refreshDetail()
	case pagePrompts:
		a.refreshPromptsForm()
	case pageChat:
		a.refreshChat()
	}
}

func (a *App) tabBar() tview.Primitive {
	bar := tview.NewTextView().SetDynamicColors(true)
	a.views["tabs"] = bar
	a.updateTabBar()
	return bar
}

func (a *App) updateTabBar() {
	bar, ok := a.views["tabs"].(*tview.TextView)
	if !ok {
		return
	}
	labels := []string{"Inbox", "Email Details", "Prompt Brain", "Agent Chat"}
	text := ""
	for i, label := range labels {
		if i == a.current {
			text += "[black:aqua] " + label + " [-:-] "
		} else {
			text += " " + label + "  "
		}
	}
	bar.SetText(text + "   [gray](Ctrl-N/Ctrl-P switch, Ctrl-Q quit)[-]")
}

// initLogger opens the file logger configured in LogFile, if possible
func (a *App) initLogger() {
	if a.Config == nil || a.Config.LogFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.Config.LogFile), 0o755); err != nil {
		return
	}
	if f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		a.logFile = f
		a.logger = log.New(f, "[promptbox] ", log.LstdFlags|log.Lmicroseconds)
		log.SetOutput(f)
	}
}

// closeLogger closes the log file if opened
func (a *App) closeLogger() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// Session exposes the session state (used by tests)
func (a *App) Session() *services.SessionState {
	return a.session
}
