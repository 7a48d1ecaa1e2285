package tui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/dmolina/promptbox/internal/mail"
	"github.com/dmolina/promptbox/internal/render"
)

// buildInboxView creates the inbox tab: email list on top, a preview and the
// category breakdown below.
func (a *App) buildInboxView() tview.Primitive {
	list := tview.NewTable().SetSelectable(true, false)
	list.SetBorder(true).SetTitle(" Inbox (r reload, p process, Enter open) ")
	a.views["inboxList"] = list

	summary := tview.NewTextView().SetDynamicColors(true)
	summary.SetBorder(true).SetTitle(" Overview ")
	a.views["inboxSummary"] = summary

	list.SetSelectedFunc(func(row, col int) {
		a.openEmailAt(row)
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'r':
			a.reloadInbox()
			a.showStatusMessage(fmt.Sprintf("Loaded %d emails", a.session.Inbox().Len()))
			return nil
		case 'p':
			a.processAllEmails()
			return nil
		case 'q':
			a.Stop()
			return nil
		}
		return event
	})

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(list, 0, 3, true).
		AddItem(summary, 0, 1, false)
}

// refreshInboxList redraws the email table and the category overview
func (a *App) refreshInboxList() {
	list, ok := a.views["inboxList"].(*tview.Table)
	if !ok {
		return
	}
	list.Clear()

	inbox := a.session.Inbox()
	for row, e := range inbox.Emails() {
		line := a.renderer.FormatEmailList(e, 100)
		cell := tview.NewTableCell(line).SetExpansion(1)
		if e.Category == mail.CategoryImportant {
			cell.SetTextColor(tcell.ColorRed)
		}
		list.SetCell(row, 0, cell)
		list.SetCell(row, 1, tview.NewTableCell(render.Preview(e.Body, 40)).
			SetTextColor(tcell.ColorGray))
	}

	a.refreshInboxSummary()
}

func (a *App) refreshInboxSummary() {
	summary, ok := a.views["inboxSummary"].(*tview.TextView)
	if !ok {
		return
	}

	inbox := a.session.Inbox()
	text := fmt.Sprintf("Total emails: %d\nProcessed: %d\n", inbox.Len(), a.session.ProcessedCount())
	if counts := inbox.CategoryCounts(); inbox.Len() > 0 {
		text += "Categories:\n"
		for _, cat := range append(mail.ValidCategories, "Uncategorized") {
			if n := counts[cat]; n > 0 {
				text += fmt.Sprintf("  %s: %d\n", cat, n)
			}
		}
	}
	summary.SetText(text)
}

// openEmailAt selects the email at the given table row and switches to the
// detail tab
func (a *App) openEmailAt(row int) {
	emails := a.session.Inbox().Emails()
	if row < 0 || row >= len(emails) {
		return
	}
	a.session.SetSelected(emails[row].ID)
	a.switchToPage(1)
}

// processAllEmails runs the bulk categorize+extract pass. The pass itself is
// strictly sequential; it runs off the UI goroutine so the screen can show
// progress, and the interface stays effectively modal until it finishes.
func (a *App) processAllEmails() {
	if !a.gateway.Configured() {
		a.showError("Cannot process: API key not configured")
		return
	}
	inbox := a.session.Inbox()
	if inbox.Len() == 0 {
		a.showStatusMessage("No emails loaded")
		return
	}

	a.setStatusPersistent("Processing emails...")
	go func() {
		results := a.inboxSvc.ProcessAll(a.ctx, inbox, func(done, total int, email *mail.Email) {
			a.QueueUpdateDraw(func() {
				a.setStatusPersistent(fmt.Sprintf("Processing email %d/%d: %s",
					done+1, total, render.Truncate(email.Subject, 50)))
			})
		})
		a.session.SetProcessed(results)

		a.QueueUpdateDraw(func() {
			a.refreshInboxList()
			a.refreshDetail()
			a.showStatusMessage(fmt.Sprintf("Processed %d emails", len(results)))
		})
	}()
}
