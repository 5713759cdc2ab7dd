package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// RunInfo is the data encoded into the QR code of a report row.
type RunInfo struct {
	ID         string          `json:"run"`
	Script     string          `json:"script"`
	Status     model.RunStatus `json:"status"`
	StartedAt  string          `json:"started_at"`
	ScriptPath string          `json:"script_path,omitempty"`
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	rowHeight    = qrSize + 4.0
)

// ReportSummary aggregates a set of runs.
type ReportSummary struct {
	Total     int     `json:"total"`
	Succeeded int     `json:"succeeded"`
	Failed    int     `json:"failed"`
	Duration  float64 `json:"duration_s"` // all runs
}

// Summarize counts runs by outcome.
func Summarize(runs []model.RunRecord) ReportSummary {
	s := ReportSummary{Total: len(runs)}
	for _, r := range runs {
		if r.Status == model.RunSucceeded {
			s.Succeeded++
		} else {
			s.Failed++
		}
		s.Duration += r.Duration
	}
	return s
}

// ExportRunReport writes runs as a PDF table, one row per run with a QR
// code identifying it. Rows appear in the order given.
func ExportRunReport(path string, runs []model.RunRecord, generated time.Time) error {
	if len(runs) == 0 {
		return fmt.Errorf("no runs to report")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	y := renderReportHeader(pdf, Summarize(runs), generated)

	for i, run := range runs {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		if err := renderRunRow(pdf, tr, y, i, run); err != nil {
			return fmt.Errorf("failed to render run %s: %w", run.ID, err)
		}
		y += rowHeight
	}

	return pdf.OutputFileAndClose(path)
}

func renderReportHeader(pdf *fpdf.Fpdf, s ReportSummary, generated time.Time) float64 {
	w := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(w, headerHeight, "GraphiDesk FabRik - Run report", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Generated %s | Runs: %d | Succeeded: %d | Failed: %d | Editor time: %.0f s",
		generated.Format("2006-01-02 15:04"), s.Total, s.Succeeded, s.Failed, s.Duration)
	pdf.CellFormat(w, 5, stats, "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 8
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	return y + 2
}

func renderRunRow(pdf *fpdf.Fpdf, tr func(string) string, y float64, idx int, run model.RunRecord) error {
	info := RunInfo{
		ID:         run.ID,
		Script:     run.Script,
		Status:     run.Status,
		StartedAt:  run.StartedAt.UTC().Format(time.RFC3339),
		ScriptPath: run.ScriptPath,
	}
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal run info: %w", err)
	}
	qrX := pageWidth - marginRight - qrSize
	if err := placeQR(pdf, fmt.Sprintf("qr_run_%d_%s", idx, run.ID), string(data), qrX, y+2); err != nil {
		return err
	}

	textW := qrX - marginLeft - labelPadding

	title := run.Script
	if run.Label != "" {
		title = run.Label + " - " + run.Script
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y+2)
	pdf.CellFormat(textW, 5, truncate(pdf, tr(title), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	if run.Status == model.RunSucceeded {
		pdf.SetTextColor(46, 125, 50)
	} else {
		pdf.SetTextColor(198, 40, 40)
	}
	pdf.SetXY(marginLeft, y+7.5)
	meta := fmt.Sprintf("%s | %s | %.1f s | #%s", run.StartedAt.Format("2006-01-02 15:04:05"), run.Status, run.Duration, run.ID)
	pdf.CellFormat(textW, 4, meta, "", 1, "L", false, 0, "")

	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(marginLeft, y+12)
	pdf.MultiCell(textW, 3.2, truncate(pdf, tr(run.Message), textW*4), "", "L", false)
	if run.ScriptPath != "" {
		pdf.SetXY(marginLeft, y+rowHeight-5)
		pdf.CellFormat(textW, 3, truncate(pdf, tr(filepath.Base(run.ScriptPath)), textW), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.1)
	pdf.Line(marginLeft, y+rowHeight, pageWidth-marginRight, y+rowHeight)
	return nil
}
