package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/dmolina/promptbox/internal/services"
)

// buildChatView creates the agent chat tab: scrolling history on top, an
// input field below.
func (a *App) buildChatView() tview.Primitive {
	history := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	history.SetBorder(true).SetTitle(" Email Agent Chat ")
	a.views["chatHistory"] = history

	input := tview.NewInputField().SetLabel("Ask about your emails: ")
	a.views["chatInput"] = input

	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		query := strings.TrimSpace(input.GetText())
		if query == "" {
			return
		}
		input.SetText("")
		if query == "/clear" {
			a.session.ClearChat()
			a.refreshChat()
			return
		}
		a.askAgent(query)
	})

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(history, 0, 1, false).
		AddItem(input, 1, 0, true)
}

// askAgent sends one query through the router and appends both turns to the
// chat history
func (a *App) askAgent(query string) {
	a.session.AppendChat("user", query)
	a.refreshChat()

	if !a.gateway.Configured() {
		a.session.AppendChat("assistant", services.MsgCredentialMissing)
		a.refreshChat()
		return
	}

	a.setStatusPersistent("Thinking...")
	go func() {
		response := a.agent.Answer(a.ctx, query, a.session.Selected(), a.session.Inbox())
		a.session.AppendChat("assistant", response)
		a.QueueUpdateDraw(func() {
			a.refreshChat()
			a.showStatusMessage("Ready")
		})
	}()
}

// refreshChat redraws the conversation history
func (a *App) refreshChat() {
	history, ok := a.views["chatHistory"].(*tview.TextView)
	if !ok {
		return
	}

	var b strings.Builder
	for _, msg := range a.session.Chat() {
		if msg.Role == "user" {
			fmt.Fprintf(&b, "[yellow]You:[-] %s\n\n", tview.Escape(msg.Content))
		} else {
			fmt.Fprintf(&b, "[aqua]Agent:[-] %s\n\n", tview.Escape(msg.Content))
		}
	}
	if b.Len() == 0 {
		b.WriteString("Ask questions about your emails in natural language.\n\n" +
			"Try: \"summarize this email\", \"show me important emails\",\n" +
			"\"what tasks are in this email?\" or anything else.\n\n" +
			"Type /clear to reset the conversation.")
	}
	history.SetText(b.String())
	history.ScrollToEnd()
}
