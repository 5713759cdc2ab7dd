package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GraphiDesk/internal/export"
	"github.com/piwi3910/GraphiDesk/internal/model"
)

// ─── Run History Panel ─────────────────────────────────────

func (a *App) buildRunsPanel() fyne.CanvasObject {
	a.runsList = widget.NewList(
		func() int { return len(a.runs) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.ConfirmIcon()),
				widget.NewLabel(""),
				widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				layout.NewSpacer(),
				widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(a.runs) {
				return
			}
			run := a.runs[id]
			row := obj.(*fyne.Container)
			icon := theme.ConfirmIcon()
			if run.Status == model.RunFailed {
				icon = theme.ErrorIcon()
			}
			row.Objects[0].(*widget.Icon).SetResource(icon)
			row.Objects[1].(*widget.Label).SetText(run.StartedAt.Local().Format("2006-01-02 15:04"))
			row.Objects[2].(*widget.Label).SetText(run.Script)
			row.Objects[4].(*widget.Label).SetText(runLine(run))
		},
	)
	a.runsList.OnSelected = func(id widget.ListItemID) {
		if id < len(a.runs) {
			a.showRunDetails(a.runs[id])
		}
		a.runsList.UnselectAll()
	}

	reportBtn := widget.NewButtonWithIcon("Export Report...", theme.DocumentSaveIcon(), func() {
		a.exportRunReport()
	})
	refreshBtn := newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Reload the run history", func() {
		a.refreshRuns()
	})
	clearBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Clear the run history", func() {
		a.clearRuns()
	})

	a.refreshRuns()

	return container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Run History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewHBox(reportBtn, layout.NewSpacer(), refreshBtn, clearBtn),
		),
		nil, nil, nil,
		a.runsList,
	)
}

// runLine is the right-hand text of a history row.
func runLine(run model.RunRecord) string {
	d := time.Duration(run.Duration * float64(time.Second)).Round(100 * time.Millisecond)
	if run.Status == model.RunFailed {
		return fmt.Sprintf("failed after %s", d)
	}
	return d.String()
}

// refreshRuns reloads the newest runs from the journal.
func (a *App) refreshRuns() {
	if a.journal == nil || a.runsList == nil {
		return
	}
	a.runs = a.journal.Last(0)
	a.runsList.Refresh()
}

func (a *App) showRunDetails(run model.RunRecord) {
	msg := run.Message
	if msg == "" {
		msg = "(no output)"
	}
	text := fmt.Sprintf("ID: %s\nScript: %s\nStarted: %s\nDuration: %.1f s\nStatus: %s\n",
		run.ID, run.Script, run.StartedAt.Local().Format(time.RFC1123), run.Duration, run.Status)
	if run.ScriptPath != "" {
		text += "Generated: " + run.ScriptPath + "\n"
	}
	text += "\n" + msg

	body := widget.NewLabel(text)
	body.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(body)
	scroll.SetMinSize(fyne.NewSize(460, 220))
	dialog.ShowCustom("Run "+run.ID, "Close", scroll, a.window)
}

func (a *App) clearRuns() {
	if a.journal == nil {
		return
	}
	dialog.ShowConfirm("Clear History", "Remove every run from the history?", func(ok bool) {
		if !ok {
			return
		}
		if err := a.journal.Clear(); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshRuns()
	}, a.window)
}

// exportRunReport writes the journal as a PDF report.
func (a *App) exportRunReport() {
	runs := a.journalRuns()
	if len(runs) == 0 {
		dialog.ShowInformation("No runs", "There is no run history to report.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportRunReport(path, runs, time.Now()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Report Exported", fmt.Sprintf("Run report written to:\n%s", path), a.window)
	}, a.window)
	d.SetFileName(fmt.Sprintf("graphidesk-runs-%s.pdf", time.Now().Format("20060102")))
	d.Show()
}
