package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GraphiDesk/internal/model"
	"github.com/piwi3910/GraphiDesk/internal/project"
)

// buildPresetRow returns the preset picker shown under the script selector.
func (a *App) buildPresetRow() fyne.CanvasObject {
	a.presetSelect = widget.NewSelect(nil, func(name string) {
		a.applyPreset(name)
	})
	a.presetSelect.PlaceHolder = "No presets for this script"

	saveBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save the parameters as a preset", func() {
		a.savePreset()
	})
	deleteBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Delete the selected preset", func() {
		a.deletePreset()
	})
	a.refreshPresets()
	return container.NewBorder(nil, nil, nil, container.NewHBox(saveBtn, deleteBtn), a.presetSelect)
}

// refreshPresets lists the presets of the selected script.
func (a *App) refreshPresets() {
	if a.presetSelect == nil {
		return
	}
	a.presetSelect.Options = a.presets.Names(a.scriptSelect.Selected)
	a.presetSelect.ClearSelected()
	a.presetSelect.Refresh()
}

func (a *App) applyPreset(name string) {
	if name == "" {
		return
	}
	p := a.presets.FindByName(name, a.scriptSelect.Selected)
	if p == nil {
		return
	}
	a.setParams("", p.Params, "Preset "+p.Name)
}

func (a *App) savePreset() {
	script := a.scriptSelect.Selected
	if script == "" {
		dialog.ShowInformation("No script", "Select a script first.", a.window)
		return
	}
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.presetSelect.Selected)
	dialog.ShowForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			name := strings.TrimSpace(nameEntry.Text)
			if !ok || name == "" {
				return
			}
			a.presets.Put(model.NewPreset(name, script, a.paramsEntry.Text))
			if err := project.SavePresets(a.presetPath, a.presets); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
				return
			}
			a.refreshPresets()
			a.statusLabel.SetText(fmt.Sprintf("Preset %q saved", name))
		},
		a.window,
	)
}

func (a *App) deletePreset() {
	name := a.presetSelect.Selected
	if name == "" {
		return
	}
	p := a.presets.FindByName(name, a.scriptSelect.Selected)
	if p == nil {
		return
	}
	id := p.ID
	dialog.ShowConfirm("Delete Preset", fmt.Sprintf("Delete preset %q?", name), func(ok bool) {
		if !ok {
			return
		}
		a.presets.Remove(id)
		if err := project.SavePresets(a.presetPath, a.presets); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
		}
		a.refreshPresets()
	}, a.window)
}
