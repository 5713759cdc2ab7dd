package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.EditorPath != DefaultEditorPath {
		t.Errorf("expected default editor path, got %s", cfg.EditorPath)
	}
	if cfg.RunTimeoutSeconds != 0 {
		t.Errorf("expected no run timeout, got %d", cfg.RunTimeoutSeconds)
	}
	if cfg.AssetMode != AssetModeAuto {
		t.Errorf("expected auto asset mode, got %q", cfg.AssetMode)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentScripts == nil {
		t.Error("RecentScripts should not be nil")
	}
}

func TestTouchRecentScriptMovesToFront(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.TouchRecentScript("a.jsx")
	cfg.TouchRecentScript("b.jsx")
	cfg.TouchRecentScript("a.jsx")

	if len(cfg.RecentScripts) != 2 {
		t.Fatalf("expected 2 recent scripts, got %d", len(cfg.RecentScripts))
	}
	if cfg.RecentScripts[0] != "a.jsx" || cfg.RecentScripts[1] != "b.jsx" {
		t.Errorf("unexpected order: %v", cfg.RecentScripts)
	}
}

func TestTouchRecentScriptIsBounded(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 15; i++ {
		cfg.TouchRecentScript(string(rune('a'+i)) + ".jsx")
	}
	if len(cfg.RecentScripts) != maxRecentScripts {
		t.Errorf("expected %d recent scripts, got %d", maxRecentScripts, len(cfg.RecentScripts))
	}
	if cfg.RecentScripts[0] != "o.jsx" {
		t.Errorf("expected most recent first, got %s", cfg.RecentScripts[0])
	}
}

func TestTouchRecentScriptIgnoresEmpty(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.TouchRecentScript("")
	if len(cfg.RecentScripts) != 0 {
		t.Errorf("expected no recent scripts, got %v", cfg.RecentScripts)
	}
}
