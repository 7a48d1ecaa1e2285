package tui

import (
	"fmt"
	"time"

	"github.com/derailed/tview"
)

const statusIdle = "Press ? on the inbox for keys | Drafts are never sent"

func (a *App) buildStatusView() *tview.TextView {
	status := tview.NewTextView().SetDynamicColors(true)
	a.setStatusIdle(status)
	return status
}

func (a *App) statusView() tview.Primitive {
	return a.views["status"]
}

func (a *App) setStatusIdle(status *tview.TextView) {
	cred := "[red]credential missing[-]"
	if a.gateway != nil && a.gateway.Configured() {
		cred = "[green]credential configured[-]"
	}
	if a.endpointDown {
		cred += " | [yellow]endpoint unreachable[-]"
	}
	status.SetText(fmt.Sprintf("Promptbox | %s | %s", cred, statusIdle))
}

// checkEndpoint checks provider reachability once at startup. Only providers
// with a reachability check (ollama) can flag anything. The check blocks, so
// it runs off the UI goroutine.
func (a *App) checkEndpoint() {
	if a.gateway == nil || !a.gateway.Configured() || a.gateway.Available() {
		return
	}
	a.QueueUpdateDraw(func() {
		a.endpointDown = true
		if status, ok := a.views["status"].(*tview.TextView); ok {
			a.setStatusIdle(status)
		}
	})
}

// showStatusMessage displays a transient message in the status bar
func (a *App) showStatusMessage(msg string) {
	status, ok := a.views["status"].(*tview.TextView)
	if !ok {
		return
	}
	status.SetText(fmt.Sprintf("Promptbox | %s", msg))
	go func() {
		time.Sleep(3 * time.Second)
		a.QueueUpdateDraw(func() {
			if status, ok := a.views["status"].(*tview.TextView); ok {
				a.setStatusIdle(status)
			}
		})
	}()
}

// setStatusPersistent sets the status bar text without auto-clearing
func (a *App) setStatusPersistent(msg string) {
	if status, ok := a.views["status"].(*tview.TextView); ok {
		status.SetText(fmt.Sprintf("Promptbox | %s", msg))
	}
}

// showError shows an error message via status helpers
func (a *App) showError(msg string) {
	a.showStatusMessage(fmt.Sprintf("[red]%s[-]", msg))
}
