package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"
	"github.com/skratchdot/open-golang/open"

	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/model"
)

// ─── Run Panel ─────────────────────────────────────────────

func (a *App) buildRunPanel() fyne.CanvasObject {
	// Editor
	a.editorEntry = widget.NewEntry()
	a.editorEntry.SetText(a.config.EditorPath)
	a.editorEntry.OnChanged = func(string) { a.checkEditor() }
	a.editorStatus = widget.NewLabel("")

	browseBtn := newIconButtonWithTooltip(theme.FolderOpenIcon(), "Browse for the editor executable", func() {
		a.browseEditor()
	})
	defaultBtn := newIconButtonWithTooltip(theme.HistoryIcon(), "Reset to the default install path", func() {
		a.editorEntry.SetText(a.shell.EditorDefaultPath())
	})
	editorRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, defaultBtn), a.editorEntry)

	// Script
	a.scriptSelect = widget.NewSelect(nil, nil)
	a.scriptSelect.PlaceHolder = "Select a script"
	a.refreshScripts()

	formBtn := widget.NewButtonWithIcon("Form...", theme.DocumentCreateIcon(), func() {
		a.showParamsForm(a.scriptSelect.Selected)
	})
	reloadBtn := newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Reload scripts from the assets folder", func() {
		a.refreshScripts()
	})
	scriptRow := container.NewBorder(nil, nil, nil, container.NewHBox(formBtn, reloadBtn), a.scriptSelect)
	presetRow := a.buildPresetRow()
	a.scriptSelect.OnChanged = func(string) { a.refreshPresets() }

	// Parameters
	a.paramsEntry = widget.NewMultiLineEntry()
	a.paramsEntry.SetPlaceHolder(`{"largeur": 1200, "hauteur": 600}`)
	a.paramsEntry.Wrapping = fyne.TextWrapWord
	a.paramsEntry.SetMinRowsVisible(8)

	// Close behavior
	minimizeCheck := widget.NewCheck("Minimize to tray when the window is closed", func(on bool) {
		a.shell.SetMinimizeOnClose(on)
	})
	minimizeCheck.SetChecked(a.shell.MinimizeOnClose())

	// Actions
	a.runBtn = widget.NewButtonWithIcon("Run in Illustrator", theme.MediaPlayIcon(), func() {
		a.runScript()
	})
	a.runBtn.Importance = widget.HighImportance
	a.revealBtn = widget.NewButtonWithIcon("Show Script", theme.FileIcon(), func() {
		a.revealLastScript()
	})
	a.revealBtn.Disable()
	a.progress = widget.NewProgressBarInfinite()
	a.progress.Stop()
	a.progress.Hide()
	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	a.checkEditor()

	form := widget.NewForm(
		widget.NewFormItem("Editor", editorRow),
		widget.NewFormItem("", a.editorStatus),
		widget.NewFormItem("Script", scriptRow),
		widget.NewFormItem("Preset", presetRow),
	)

	return container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Illustrator Script", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			form,
			widget.NewLabel("Parameters (JSON)"),
		),
		container.NewVBox(
			minimizeCheck,
			widget.NewSeparator(),
			container.NewHBox(a.runBtn, a.revealBtn, layout.NewSpacer()),
			a.progress,
			a.statusLabel,
		),
		nil, nil,
		a.paramsEntry,
	)
}

// refreshScripts lists the scripts in the assets folder, recent ones first.
// The shipped catalog is used when the folder cannot be read.
func (a *App) refreshScripts() {
	names, err := a.runner.Scripts()
	if err != nil {
		a.log.Warn().Err(err).Msg("cannot list scripts, using catalog")
		names = model.KnownScripts
	}
	selected := a.scriptSelect.Selected
	a.scriptSelect.Options = orderScripts(names, a.config.RecentScripts)
	a.scriptSelect.Refresh()
	if selected != "" {
		a.scriptSelect.SetSelected(selected)
	} else if len(a.config.RecentScripts) > 0 {
		a.scriptSelect.SetSelected(a.config.RecentScripts[0])
	}
}

// orderScripts puts the recent scripts that exist first, then the rest in
// their original order.
func orderScripts(names, recent []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, r := range recent {
		if present[r] && !seen[r] {
			out = append(out, r)
			seen[r] = true
		}
	}
	for _, n := range names {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}

func (a *App) checkEditor() {
	path := strings.TrimSpace(a.editorEntry.Text)
	switch {
	case path == "":
		a.editorStatus.SetText("No editor configured")
	case a.shell.CheckEditorExists(path):
		a.editorStatus.SetText("Editor found")
	default:
		a.editorStatus.SetText("Editor not found at this path")
	}
}

func (a *App) browseEditor() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.editorEntry.SetText(reader.URI().Path())
	}, a.window)
}

func (a *App) setBusy(busy bool) {
	a.busy = busy
	if busy {
		a.runBtn.Disable()
		a.progress.Show()
		a.progress.Start()
		return
	}
	a.runBtn.Enable()
	a.progress.Stop()
	a.progress.Hide()
}

// runScript starts the selected script off the UI goroutine and reports the
// outcome back through fyne.Do.
func (a *App) runScript() {
	if a.busy {
		return
	}
	script := a.scriptSelect.Selected
	if script == "" {
		dialog.ShowInformation("No script", "Select a script to run first.", a.window)
		return
	}
	editor := strings.TrimSpace(a.editorEntry.Text)

	req := model.ScriptRequest{
		ID:         uuid.New().String()[:8],
		EditorPath: editor,
		ScriptName: script,
		RawParams:  a.paramsEntry.Text,
	}
	a.history.Push(MakeSnapshot(script, req.RawParams, "Run "+script))

	a.config.EditorPath = editor
	a.config.TouchRecentScript(script)
	if err := a.saveConfig(); err != nil {
		a.log.Warn().Err(err).Msg("run continues without saving config")
	}

	a.setBusy(true)
	a.statusLabel.SetText(fmt.Sprintf("Running %s...", script))
	tempPath := a.runner.Materializer.TempPath(req.ID)

	a.shell.RunScriptAsync(req, func(msg string, err error) {
		fyne.Do(func() {
			a.setBusy(false)
			a.refreshRuns()
			if err != nil {
				a.statusLabel.SetText("Failed: " + err.Error())
				if !fabrik.IsKind(err, fabrik.KindCanceled) {
					dialog.ShowError(err, a.window)
				}
				if fabrik.IsKind(err, fabrik.KindEditorExecution) {
					a.setLastScript(tempPath)
				}
				return
			}
			a.statusLabel.SetText(msg)
			a.setLastScript(tempPath)
		})
	})
}

func (a *App) setLastScript(path string) {
	a.lastScript = path
	a.revealBtn.Enable()
}

// revealLastScript opens the folder holding the last generated script.
func (a *App) revealLastScript() {
	if a.lastScript == "" {
		return
	}
	if err := open.Start(filepath.Dir(a.lastScript)); err != nil {
		dialog.ShowError(fmt.Errorf("cannot open %s: %w", filepath.Dir(a.lastScript), err), a.window)
	}
}

// setParams replaces the parameters text, recording the previous value for
// undo.
func (a *App) setParams(script, params, label string) {
	a.history.Push(MakeSnapshot(a.scriptSelect.Selected, a.paramsEntry.Text, label))
	if script != "" {
		a.scriptSelect.SetSelected(script)
	}
	a.paramsEntry.SetText(params)
}

func (a *App) undoParams() {
	current := MakeSnapshot(a.scriptSelect.Selected, a.paramsEntry.Text, "current")
	if s, ok := a.history.Undo(current); ok {
		a.restoreSnapshot(s)
	}
}

func (a *App) redoParams() {
	current := MakeSnapshot(a.scriptSelect.Selected, a.paramsEntry.Text, "current")
	if s, ok := a.history.Redo(current); ok {
		a.restoreSnapshot(s)
	}
}

func (a *App) restoreSnapshot(s Snapshot) {
	if s.Script != "" {
		a.scriptSelect.SetSelected(s.Script)
	}
	a.paramsEntry.SetText(s.Params)
}
