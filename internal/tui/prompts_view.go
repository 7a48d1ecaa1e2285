package tui

import (
	"github.com/derailed/tview"

	"github.com/dmolina/promptbox/internal/prompts"
)

// buildPromptsView creates the Prompt Brain tab: one editable area per
// template slot plus save/reload. Every model-backed operation reads these
// templates, so edits take effect on the next call.
func (a *App) buildPromptsView() tview.Primitive {
	form := tview.NewForm()
	form.SetBorder(true).SetTitle(" Prompt Brain (edits apply on Save) ")
	a.views["promptsForm"] = form

	a.refreshPromptsForm()
	return form
}

// refreshPromptsForm rebuilds the form from the active template set
func (a *App) refreshPromptsForm() {
	form, ok := a.views["promptsForm"].(*tview.Form)
	if !ok {
		return
	}
	form.Clear(true)

	cfg := *a.prompts.Current()

	form.AddInputField("Categorization", cfg.Categorization, 0, nil, func(text string) {
		cfg.Categorization = text
	})
	form.AddInputField("Action Items", cfg.ActionItem, 0, nil, func(text string) {
		cfg.ActionItem = text
	})
	form.AddInputField("Auto Reply", cfg.AutoReply, 0, nil, func(text string) {
		cfg.AutoReply = text
	})
	form.AddInputField("Summary", cfg.Summary, 0, nil, func(text string) {
		cfg.Summary = text
	})
	form.AddInputField("General Agent", cfg.GeneralAgent, 0, nil, func(text string) {
		cfg.GeneralAgent = text
	})

	form.AddButton("Save", func() {
		saved := cfg
		if err := a.prompts.Save(&saved); err != nil {
			a.showError("Failed to save prompts: " + err.Error())
			return
		}
		a.showStatusMessage("Prompts saved to " + a.Config.Prompts)
	})
	form.AddButton("Reload", func() {
		a.prompts.Reload()
		a.refreshPromptsForm()
		a.showStatusMessage("Prompts reloaded")
	})
	form.AddButton("Restore Defaults", func() {
		if err := a.prompts.Save(prompts.Defaults()); err != nil {
			a.showError("Failed to save prompts: " + err.Error())
			return
		}
		a.refreshPromptsForm()
		a.showStatusMessage("Default prompts restored")
	})
}
