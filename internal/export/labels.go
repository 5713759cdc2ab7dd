// Package export renders GraphiDesk jobs and run history to PDF, with a
// QR code per entry so printed sheets can be matched back to runs.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// LabelInfo holds the data encoded into each job label's QR code.
type LabelInfo struct {
	JobID   string `json:"job"`
	Label   string `json:"label"`
	Script  string `json:"script"`
	Summary string `json:"summary,omitempty"`
}

// Label layout constants for Avery L7159-compatible labels (3 columns, 8 rows per page).
// Each label cell is 63.5mm x 33.9mm on A4 paper.
const (
	labelMarginTop  = 12.9 // mm
	labelMarginLeft = 7.2  // mm
	labelWidth      = 63.5 // mm per label
	labelHeight     = 33.9 // mm per label
	labelCols       = 3
	labelRows       = 8
	labelsPerPage   = labelCols * labelRows
	qrSize          = 24.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportJobLabels writes a sheet of QR-coded labels, one per job, so boxes
// produced by a batch can be tagged with the job that generated them.
func ExportJobLabels(path string, jobs []model.Job) error {
	labels := CollectLabelInfos(jobs)
	if len(labels) == 0 {
		return fmt.Errorf("no jobs to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// CollectLabelInfos extracts the label data of jobs, in order.
func CollectLabelInfos(jobs []model.Job) []LabelInfo {
	labels := make([]LabelInfo, 0, len(jobs))
	for _, j := range jobs {
		labels = append(labels, LabelInfo{
			JobID:   j.ID,
			Label:   j.Label,
			Script:  j.Script,
			Summary: j.Summary(),
		})
	}
	return labels
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, idx int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	imgName := fmt.Sprintf("qr_job_%d_%s", idx, info.JobID)
	if err := placeQR(pdf, imgName, string(qrData), x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2); err != nil {
		return err
	}

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, tr(info.Label), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.MultiCell(textW, 3.2, tr(info.Summary), "", "L", false)

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelHeight-labelPadding-6)
	pdf.CellFormat(textW, 3, truncate(pdf, info.Script, textW), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelHeight-labelPadding-3)
	pdf.CellFormat(textW, 3, "#"+info.JobID, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// placeQR renders data as a QR code image of qrSize at (x, y).
func placeQR(pdf *fpdf.Fpdf, name, data string, x, y float64) error {
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, qrSize, qrSize, false, opts, 0, "")
	return nil
}

// truncate shortens s with an ellipsis until it fits in width w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
