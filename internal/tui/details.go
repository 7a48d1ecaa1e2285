package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Reply tones offered by the draft form
var replyTones = []string{"Professional", "Friendly", "Concise", "Formal"}

// buildDetailView creates the email detail tab: header+body on the left,
// AI output (summary, tasks, draft) on the right.
func (a *App) buildDetailView() tview.Primitive {
	body := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	body.SetBorder(true).SetTitle(" Email (s summarize, t tasks, d draft reply) ")
	a.views["detailBody"] = body

	output := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	output.SetBorder(true).SetTitle(" Assistant Output ")
	a.views["detailOutput"] = output

	body.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 's':
			a.summarizeSelected()
			return nil
		case 't':
			a.extractTasksFromSelected()
			return nil
		case 'd':
			a.showDraftForm()
			return nil
		}
		return event
	})

	return tview.NewFlex().
		AddItem(body, 0, 1, true).
		AddItem(output, 0, 1, false)
}

// refreshDetail redraws the selected email and any stored results for it
func (a *App) refreshDetail() {
	body, ok := a.views["detailBody"].(*tview.TextView)
	if !ok {
		return
	}

	selected := a.session.Selected()
	if selected == nil {
		body.SetText("No email selected.\n\nOpen one from the Inbox tab with Enter.")
		if out, ok := a.views["detailOutput"].(*tview.TextView); ok {
			out.SetText("")
		}
		return
	}

	text := a.renderer.FormatEmailHeader(selected) + "\n\n" + a.renderer.FormatBody(selected)
	body.SetText(text)

	// Show stored processing results and draft, if any
	var sections []string
	if result, ok := a.session.Processed(selected.ID); ok && len(result.Actions) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Extracted Action Items (%d):\n", len(result.Actions))
		for _, action := range result.Actions {
			b.WriteString("- " + action.String() + "\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	if draft := a.session.Draft(selected.ID); draft != nil {
		sections = append(sections, "Saved Draft\n\n"+a.renderer.FormatDraft(draft))
	}
	if out, ok := a.views["detailOutput"].(*tview.TextView); ok {
		out.SetText(strings.Join(sections, "\n\n---\n\n"))
	}
}

func (a *App) setDetailOutput(text string) {
	if out, ok := a.views["detailOutput"].(*tview.TextView); ok {
		out.SetText(text)
	}
}

// summarizeSelected asks the pipeline for a summary of the open email
func (a *App) summarizeSelected() {
	selected := a.session.Selected()
	if selected == nil {
		return
	}
	if !a.gateway.Configured() {
		a.showError("API key not configured")
		return
	}

	a.setStatusPersistent("Generating summary...")
	go func() {
		summary := a.pipeline.Summarize(a.ctx, selected)
		a.QueueUpdateDraw(func() {
			a.setDetailOutput("Summary:\n\n" + summary)
			a.showStatusMessage("Summary ready")
		})
	}()
}

// extractTasksFromSelected asks the pipeline for action items
func (a *App) extractTasksFromSelected() {
	selected := a.session.Selected()
	if selected == nil {
		return
	}
	if !a.gateway.Configured() {
		a.showError("API key not configured")
		return
	}

	a.setStatusPersistent("Extracting tasks...")
	go func() {
		actions := a.pipeline.ExtractActionItems(a.ctx, selected)
		a.QueueUpdateDraw(func() {
			if len(actions) == 0 {
				a.setDetailOutput("No specific tasks found in this email.")
			} else {
				var b strings.Builder
				fmt.Fprintf(&b, "Tasks Found (%d):\n\n", len(actions))
				for _, action := range actions {
					b.WriteString("- " + action.String() + "\n")
				}
				a.setDetailOutput(b.String())
			}
			a.showStatusMessage("Task extraction done")
		})
	}()
}

// showDraftForm pops the tone picker, then generates the draft
func (a *App) showDraftForm() {
	selected := a.session.Selected()
	if selected == nil {
		return
	}
	if !a.gateway.Configured() {
		a.showError("API key not configured")
		return
	}

	form := tview.NewForm()
	tone := replyTones[0]
	form.AddDropDown("Tone", replyTones, 0, func(option string, _ int) {
		tone = option
	})
	form.AddButton("Generate Draft", func() {
		a.Pages.RemovePage("draftForm")
		a.generateDraft(tone)
	})
	form.AddButton("Cancel", func() {
		a.Pages.RemovePage("draftForm")
	})
	form.SetBorder(true).SetTitle(" Draft Reply ")

	modal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(form, 9, 0, true).
			AddItem(nil, 0, 1, false), 44, 0, true).
		AddItem(nil, 0, 1, false)

	a.Pages.AddPage("draftForm", modal, true, true)
}

func (a *App) generateDraft(tone string) {
	selected := a.session.Selected()
	if selected == nil {
		return
	}

	a.setStatusPersistent("Drafting reply...")
	go func() {
		draft := a.pipeline.DraftReply(a.ctx, selected, tone)
		a.session.SetDraft(draft)
		a.QueueUpdateDraw(func() {
			a.refreshDetail()
			a.showStatusMessage("Draft generated (not sent)")
		})
	}()
}
