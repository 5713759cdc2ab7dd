package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GraphiDesk/internal/model"
	"github.com/piwi3910/GraphiDesk/internal/project"
)

// execute runs the CLI with args against an empty config and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.json"), "--log-level", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// makeAssets creates <root>/assets/fabrik/{scripts,actions} with one script.
func makeAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	fabrik := filepath.Join(root, "assets", "fabrik")
	require.NoError(t, os.MkdirAll(filepath.Join(fabrik, "scripts"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(fabrik, "actions"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(fabrik, "scripts", "caisson_generation.jsx"), []byte("run(params);\n"), 0644))
	return root
}

// fakeEditor writes a shell script standing in for the editor.
func fakeEditor(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake editor is a shell script")
	}
	path := filepath.Join(t.TempDir(), "illustrator")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestScriptsCommand(t *testing.T) {
	root := makeAssets(t)
	out, err := execute(t, "--mode", "packaged", "--asset-root", root, "scripts")
	require.NoError(t, err)
	assert.Equal(t, "caisson_generation.jsx\n", out)
}

func TestScriptsCommand_MissingAssets(t *testing.T) {
	_, err := execute(t, "--mode", "packaged", "--asset-root", t.TempDir(), "scripts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scripts directory not found")
}

func TestAssetsCommand_JSON(t *testing.T) {
	root := makeAssets(t)
	out, err := execute(t, "--mode", "packaged", "--asset-root", root, "--json", "assets")
	require.NoError(t, err)

	var rep assetsReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "packaged", rep.Mode)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik", "scripts"), rep.ScriptsDir)
	assert.Len(t, rep.Actions, 5)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik", "actions", "CutContour.aia"), rep.Actions["cutContour"])
}

func TestRunCommand_Success(t *testing.T) {
	root := makeAssets(t)
	editor := fakeEditor(t, `grep -q "var params" "$2" || exit 9`)

	out, err := execute(t, "--mode", "packaged", "--asset-root", root,
		"run", "caisson_generation.jsx", "--editor", editor, "--no-journal",
		"--params", `{"largeur": 1200, "hauteur": 600}`)
	require.NoError(t, err)
	assert.Contains(t, out, "script executed successfully")
}

func TestRunCommand_EditorFailureJSON(t *testing.T) {
	root := makeAssets(t)
	editor := fakeEditor(t, `echo "document is locked" >&2; exit 3`)

	out, err := execute(t, "--mode", "packaged", "--asset-root", root, "--json",
		"run", "caisson_generation.jsx", "--editor", editor, "--no-journal")
	require.Error(t, err)

	var res runResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.OK)
	assert.Equal(t, "editor execution", res.Kind)
	assert.Contains(t, res.Error, "document is locked")
}

func TestRunCommand_ParamsFile(t *testing.T) {
	root := makeAssets(t)
	editor := fakeEditor(t, `grep -q '"dossierName": "D-42"' "$2" || exit 9`)
	params := filepath.Join(t.TempDir(), "params.json")
	require.NoError(t, os.WriteFile(params, []byte(`{"dossierName": "D-42"}`), 0644))

	_, err := execute(t, "--mode", "packaged", "--asset-root", root,
		"run", "caisson_generation.jsx", "--editor", editor, "--no-journal", "--params-file", params)
	require.NoError(t, err)
}

func TestRunCommand_RequiresScript(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
}

func TestCheckEditorCommand(t *testing.T) {
	_, err := execute(t, "check-editor", filepath.Join(t.TempDir(), "missing.exe"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor not found")

	exe, err := os.Executable()
	require.NoError(t, err)
	out, err := execute(t, "check-editor", exe)
	require.NoError(t, err)
	assert.Contains(t, out, "Editor found")
}

func TestBatchCommand_DryRun(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "caissons.csv")
	require.NoError(t, os.WriteFile(csv, []byte("Label;Largeur;Hauteur;Quantite\nVitrine;1200;600;2\nBad;abc;600;1\n"), 0644))

	out, err := execute(t, "--json", "batch", csv, "--dry-run")
	require.NoError(t, err)

	var rep batchReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Jobs, 2)
	assert.Equal(t, model.ScriptCaissonSimple, rep.Jobs[0].Script)
	assert.Contains(t, rep.Jobs[0].Params, `"largeur":1200`)
	assert.Len(t, rep.Skipped, 1)
	assert.Zero(t, rep.Failed)
}

func TestBatchCommand_NoJobs(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(csv, []byte("Label;Largeur;Hauteur\n"), 0644))

	_, err := execute(t, "batch", csv, "--dry-run")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	journalPath := filepath.Join(t.TempDir(), "runs.json")
	journal, err := project.OpenJournal(journalPath)
	require.NoError(t, err)
	rec := model.NewRunRecord("r1", model.ScriptCaissonSimple, time.Now())
	rec.Finish(time.Now(), "ok", nil)
	require.NoError(t, journal.Record(rec))

	pdf := filepath.Join(t.TempDir(), "runs.pdf")
	out, err := execute(t, "report", pdf, "--journal", journalPath, "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 runs (1 succeeded, 0 failed)")

	info, err := os.Stat(pdf)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	reopened, err := project.OpenJournal(journalPath)
	require.NoError(t, err)
	assert.Empty(t, reopened.Runs())
}

func TestReportCommand_EmptyJournal(t *testing.T) {
	_, err := execute(t, "report", filepath.Join(t.TempDir(), "x.pdf"),
		"--journal", filepath.Join(t.TempDir(), "runs.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runs recorded")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fabrik version dev\n", out)
}

func TestRunCommand_Preset(t *testing.T) {
	root := makeAssets(t)
	editor := fakeEditor(t, `grep -q '"largeur":900' "$2" || exit 9`)
	presets := filepath.Join(t.TempDir(), "presets.json")
	store := model.NewPresetStore()
	store.Put(model.NewPreset("Petit", model.ScriptCaissonSimple, `{"largeur":900}`))
	require.NoError(t, project.SavePresets(presets, store))

	_, err := execute(t, "--mode", "packaged", "--asset-root", root,
		"run", "caisson_generation.jsx", "--editor", editor, "--no-journal",
		"--presets", presets, "--preset", "Petit")
	require.NoError(t, err)

	_, err = execute(t, "--mode", "packaged", "--asset-root", root,
		"run", "caisson_generation.jsx", "--editor", editor, "--no-journal",
		"--presets", presets, "--preset", "Grand")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no preset "Grand"`)
}
