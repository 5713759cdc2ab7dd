package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/GraphiDesk/internal/export"
	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/importer"
	"github.com/piwi3910/GraphiDesk/internal/model"
)

// ─── Batch Panel ───────────────────────────────────────────

func (a *App) buildBatchPanel() fyne.CanvasObject {
	a.batchList = widget.NewList(
		func() int { return len(a.batch) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(""),
				layout.NewSpacer(),
				widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(a.batch) {
				return
			}
			job := a.batch[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(job.Label)
			row.Objects[1].(*widget.Label).SetText(job.Summary())
			row.Objects[3].(*widget.Label).SetText(job.Script)
		},
	)

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importBatch()
	})
	a.batchRunBtn = widget.NewButtonWithIcon("Run All", theme.MediaPlayIcon(), func() {
		a.runBatch()
	})
	a.batchRunBtn.Importance = widget.HighImportance
	cancelBtn := newIconButtonWithTooltip(theme.MediaStopIcon(), "Stop after the current job", func() {
		if a.batchCancel != nil {
			a.batchCancel()
		}
	})
	labelsBtn := newButtonWithTooltip("Labels...", theme.DocumentPrintIcon(), "Export QR labels for the batch", func() {
		a.exportBatchLabels()
	})
	clearBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Clear the batch", func() {
		if a.batchCancel != nil {
			return
		}
		a.setBatch(nil)
	})

	a.batchProgress = widget.NewProgressBar()
	a.batchProgress.Hide()
	a.batchStatus = widget.NewLabel("Import a CSV or Excel sheet of caissons.")
	a.batchStatus.Wrapping = fyne.TextWrapWord

	return container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Batch", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewHBox(importBtn, labelsBtn, layout.NewSpacer(), clearBtn),
		),
		container.NewVBox(
			widget.NewSeparator(),
			container.NewHBox(a.batchRunBtn, cancelBtn, layout.NewSpacer()),
			a.batchProgress,
			a.batchStatus,
		),
		nil, nil,
		a.batchList,
	)
}

func (a *App) setBatch(jobs []model.Job) {
	a.batch = jobs
	a.batchList.Refresh()
	if len(jobs) == 0 {
		a.batchStatus.SetText("Batch is empty.")
		return
	}
	a.batchStatus.SetText(fmt.Sprintf("%d jobs ready.", len(jobs)))
}

// importBatch reads jobs from a CSV or Excel file and shows what was skipped.
func (a *App) importBatch() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result := importer.Import(path)
		if len(result.Jobs) == 0 && len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		a.setBatch(append(a.batch, result.Jobs...))
		a.tabs.SelectIndex(1)
		a.log.Info().Str("path", path).Int("jobs", len(result.Jobs)).
			Int("errors", len(result.Errors)).Msg("batch imported")

		if report := importReport(result); report != "" {
			dialog.ShowInformation("Import Report", report, a.window)
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xls"}))
	d.Show()
}

// importReport lists skipped rows and warnings, or returns "" when the
// import was clean.
func importReport(r importer.ImportResult) string {
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d jobs.\n", len(r.Jobs))
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\nSkipped rows (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			b.WriteString("  " + e + "\n")
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			b.WriteString("  " + w + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// runBatch runs every job in order on a background goroutine. Quitting the
// app cancels the batch along with the editor process.
func (a *App) runBatch() {
	if a.batchCancel != nil || len(a.batch) == 0 {
		return
	}
	jobs := append([]model.Job(nil), a.batch...)
	editor := strings.TrimSpace(a.editorEntry.Text)

	ctx, cancel := context.WithCancel(a.shell.Context())
	a.batchCancel = cancel
	a.batchRunBtn.Disable()
	a.batchProgress.SetValue(0)
	a.batchProgress.Show()
	a.batchStatus.SetText(fmt.Sprintf("Running 0 / %d...", len(jobs)))

	go func() {
		defer cancel()
		results := a.runner.RunJobs(ctx, editor, jobs, func(done int, res fabrik.JobResult) {
			fyne.Do(func() {
				a.batchProgress.SetValue(float64(done) / float64(len(jobs)))
				a.batchStatus.SetText(fmt.Sprintf("Running %d / %d... last: %s", done, len(jobs), res.Job.Label))
				a.refreshRuns()
			})
		})
		fyne.Do(func() {
			a.batchCancel = nil
			a.batchRunBtn.Enable()
			a.batchProgress.Hide()
			a.batchStatus.SetText(batchOutcome(results, len(jobs)))
			a.refreshRuns()
		})
	}()
}

// batchOutcome summarises a finished or stopped batch.
func batchOutcome(results []fabrik.JobResult, total int) string {
	failed := 0
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
		}
	}
	s := fmt.Sprintf("%d / %d jobs run, %d failed.", len(results), total, failed)
	if len(results) < total {
		s = "Stopped. " + s
	}
	if firstErr != nil {
		s += "\nFirst error: " + firstErr.Error()
	}
	return s
}

func (a *App) exportBatchLabels() {
	if len(a.batch) == 0 {
		dialog.ShowInformation("No jobs", "Import a batch first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportJobLabels(path, a.batch); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Labels Exported", fmt.Sprintf("%d labels written to:\n%s", len(a.batch), path), a.window)
	}, a.window)
	d.SetFileName("graphidesk-labels.pdf")
	d.Show()
}
