package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func buildTestJobs() []model.Job {
	return []model.Job{
		model.NewJob("Pharmacie Centrale", model.ScriptCaissonSimple, &model.CaissonSimpleParams{
			Largeur: 1200, Hauteur: 600, Profondeur: 70, DrillingHoles: true,
		}),
		model.NewJob("Boulangerie Éclair", model.ScriptCaissonSimple, &model.CaissonSimpleParams{
			Largeur: 2000, Hauteur: 500, Profondeur: 45,
		}),
		model.NewJob("Adhésifs vitrine", model.ScriptFullAutomation, nil),
	}
}

func TestExportJobLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportJobLabels(path, buildTestJobs()); err != nil {
		t.Fatalf("ExportJobLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportJobLabels_NoJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportJobLabels(path, nil); err == nil {
		t.Fatal("expected error for no jobs, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty batch")
	}
}

func TestExportJobLabels_ManyJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	// More than one page of labels.
	jobs := make([]model.Job, labelsPerPage+5)
	for i := range jobs {
		jobs[i] = model.NewJob(fmt.Sprintf("Caisson %d", i+1), model.ScriptCaissonSimple, &model.CaissonSimpleParams{
			Largeur: 500 + float64(i*10), Hauteur: 300, Profondeur: 70,
		})
	}

	if err := ExportJobLabels(path, jobs); err != nil {
		t.Fatalf("ExportJobLabels returned error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("PDF file missing or empty: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	jobs := buildTestJobs()
	labels := CollectLabelInfos(jobs)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].JobID != jobs[0].ID {
		t.Errorf("expected job id %s, got %s", jobs[0].ID, labels[0].JobID)
	}
	if labels[0].Summary != "1200 x 600 x 70 mm, drilled" {
		t.Errorf("unexpected summary %q", labels[0].Summary)
	}
	if labels[2].Script != model.ScriptFullAutomation || labels[2].Summary != "" {
		t.Errorf("unexpected third label %+v", labels[2])
	}
}

func TestLabelInfo_QRPayload(t *testing.T) {
	data, err := json.Marshal(LabelInfo{JobID: "ab12cd34", Label: "A", Script: model.ScriptCaissonSimple})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if fields["job"] != "ab12cd34" {
		t.Errorf("expected job key in payload, got %v", fields)
	}
	if _, ok := fields["summary"]; ok {
		t.Error("empty summary should be omitted from the payload")
	}
}
