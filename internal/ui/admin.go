package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GraphiDesk/internal/model"
	"github.com/piwi3910/GraphiDesk/internal/project"
)

var assetModeLabels = []string{"Automatic", "Development", "Packaged"}

func assetModeLabel(mode string) string {
	switch mode {
	case model.AssetModeDev:
		return "Development"
	case model.AssetModePackaged:
		return "Packaged"
	}
	return "Automatic"
}

func assetModeValue(label string) string {
	switch label {
	case "Development":
		return model.AssetModeDev
	case "Packaged":
		return model.AssetModePackaged
	}
	return model.AssetModeAuto
}

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	editorEntry := widget.NewEntry()
	editorEntry.SetText(cfg.EditorPath)

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.Itoa(cfg.RunTimeoutSeconds))

	modeSelect := widget.NewSelect(assetModeLabels, nil)
	modeSelect.SetSelected(assetModeLabel(cfg.AssetMode))

	rootEntry := widget.NewEntry()
	rootEntry.SetPlaceHolder("next to the executable")
	rootEntry.SetText(cfg.AssetRoot)

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, nil)
	themeSelect.SetSelected(cfg.Theme)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Illustrator", editorEntry),
		widget.NewFormItem("Run Timeout (s, 0=none)", timeoutEntry),
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Asset Mode", modeSelect),
		widget.NewFormItem("Asset Root", rootEntry),
		widget.NewFormItem("", widget.NewLabel("Asset and timeout changes apply after a restart.")),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			timeout, err := strconv.Atoi(strings.TrimSpace(timeoutEntry.Text))
			if err != nil || timeout < 0 {
				dialog.ShowError(fmt.Errorf("run timeout must be a whole number of seconds"), a.window)
				return
			}
			cfg.EditorPath = strings.TrimSpace(editorEntry.Text)
			cfg.RunTimeoutSeconds = timeout
			cfg.AssetMode = assetModeValue(modeSelect.Selected)
			cfg.AssetRoot = strings.TrimSpace(rootEntry.Text)
			cfg.Theme = themeSelect.Selected
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(560, 420))
	d.Show()
}

// applyConfig installs cfg and refreshes the parts of the UI that read it.
func (a *App) applyConfig(cfg model.AppConfig) {
	a.config = cfg
	a.theme.SetName(cfg.Theme)
	a.app.Settings().SetTheme(a.theme)
	if a.editorEntry != nil {
		a.editorEntry.SetText(cfg.EditorPath)
	}
	if a.scriptSelect != nil {
		a.refreshScripts()
	}
}

// showImportExportDialog displays the settings backup dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export Settings...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportSettings(path, a.config, a.journalRuns()); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings and run history exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("graphidesk-settings.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import Settings...", func() {
		dialog.ShowConfirm("Import Settings",
			"Importing will replace your current settings.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportSettings(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.applyConfig(backup.Config)
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Settings imported from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings and run history to a backup file,\nor restore settings from a previous export."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export", "Close", content, a.window)
	d.Resize(fyne.NewSize(420, 240))
	d.Show()
}

func (a *App) journalRuns() []model.RunRecord {
	if a.journal == nil {
		return nil
	}
	return a.journal.Runs()
}
