package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func buildTestRuns(n int) []model.RunRecord {
	start := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	runs := make([]model.RunRecord, n)
	for i := range runs {
		rec := model.NewRunRecord(fmt.Sprintf("run%04d", i), model.ScriptCaissonSimple, start.Add(time.Duration(i)*time.Minute))
		rec.Label = fmt.Sprintf("Enseigne %d", i)
		rec.ScriptPath = filepath.Join(os.TempDir(), fmt.Sprintf("fabrik_run%04d.jsx", i))
		var err error
		if i%3 == 2 {
			err = errors.New("editor failed: Error 1200: " + strings.Repeat("the document is locked ", 20))
		}
		rec.Finish(rec.StartedAt.Add(12*time.Second), "script executed successfully", err)
		runs[i] = rec
	}
	return runs
}

func TestExportRunReport_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := ExportRunReport(path, buildTestRuns(4), time.Now()); err != nil {
		t.Fatalf("ExportRunReport returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 1000 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportRunReport_MultiPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := ExportRunReport(path, buildTestRuns(25), time.Now()); err != nil {
		t.Fatalf("ExportRunReport returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	pages := strings.Count(string(data), "/Type /Page") - strings.Count(string(data), "/Type /Pages")
	if pages < 2 {
		t.Errorf("expected several pages, got %d", pages)
	}
}

func TestExportRunReport_NoRuns(t *testing.T) {
	if err := ExportRunReport(filepath.Join(t.TempDir(), "r.pdf"), nil, time.Now()); err == nil {
		t.Fatal("expected error for empty journal")
	}
}

func TestExportRunReport_DuplicateIDs(t *testing.T) {
	runs := buildTestRuns(2)
	runs[1].ID = runs[0].ID
	if err := ExportRunReport(filepath.Join(t.TempDir(), "r.pdf"), runs, time.Now()); err != nil {
		t.Fatalf("ExportRunReport returned error: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(buildTestRuns(6))
	if s.Total != 6 || s.Succeeded != 4 || s.Failed != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Duration != 72 {
		t.Errorf("expected 72 s total, got %v", s.Duration)
	}
}
