package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func TestExportAndImportSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.EditorPath = `D:\Adobe\Illustrator.exe`
	cfg.Theme = "dark"
	runs := []model.RunRecord{{
		ID:        "a1b2c3d4",
		Script:    model.ScriptCaissonSimple,
		StartedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Status:    model.RunSucceeded,
	}}

	if err := ExportSettings(path, cfg, runs); err != nil {
		t.Fatalf("ExportSettings failed: %v", err)
	}

	backup, err := ImportSettings(path)
	if err != nil {
		t.Fatalf("ImportSettings failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.EditorPath != cfg.EditorPath {
		t.Errorf("expected EditorPath=%q, got %q", cfg.EditorPath, backup.Config.EditorPath)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Runs) != 1 || backup.Runs[0].ID != "a1b2c3d4" {
		t.Errorf("expected one run a1b2c3d4, got %+v", backup.Runs)
	}
}

func TestImportSettingsMissingFile(t *testing.T) {
	if _, err := ImportSettings(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportSettingsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportSettings(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportSettingsMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"theme":"dark"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportSettings(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportSettingsCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	if err := ExportSettings(path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatalf("ExportSettings should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportSettingsNilRecentScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2026-01-01T00:00:00Z","config":{"recent_scripts":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportSettings(path)
	if err != nil {
		t.Fatalf("ImportSettings failed: %v", err)
	}
	if backup.Config.RecentScripts == nil {
		t.Error("RecentScripts should not be nil after import")
	}
	if backup.Config.EditorPath != model.DefaultEditorPath {
		t.Errorf("expected default editor path for missing field, got %q", backup.Config.EditorPath)
	}
}
