package fabrik

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_DevelopmentThreeLevelsUp(t *testing.T) {
	root := makeAssets(t)
	exe := filepath.Join(root, "target", "debug", "graphidesk")

	loc := Locator{
		Mode:       ModeDevelopment,
		Executable: func() (string, error) { return exe, nil },
	}
	layout, err := loc.Locate()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "assets", "fabrik"), layout.Root)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik", "scripts"), layout.ScriptsDir)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik", "actions"), layout.ActionsDir)
}

func TestLocate_DevelopmentTooShallow(t *testing.T) {
	exe := filepath.Join(string(filepath.Separator), "graphidesk")
	loc := Locator{
		Mode:       ModeDevelopment,
		Executable: func() (string, error) { return exe, nil },
	}
	_, err := loc.Locate()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindPathResolution), "got %v", err)
}

func TestLocate_ExecutableUnknown(t *testing.T) {
	loc := Locator{
		Mode:       ModeDevelopment,
		Executable: func() (string, error) { return "", errors.New("no /proc") },
	}
	_, err := loc.Locate()
	assert.True(t, IsKind(err, KindPathResolution))
	assert.Contains(t, err.Error(), "no /proc")
}

func TestLocate_Packaged(t *testing.T) {
	root := makeAssets(t)
	layout, err := packagedLocator(root).Locate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik"), layout.Root)
}

func TestLocate_PackagedWithoutResourceDir(t *testing.T) {
	cases := map[string]Locator{
		"nil func": {Mode: ModePackaged},
		"error":    {Mode: ModePackaged, ResourceDir: func() (string, error) { return "", errors.New("sandboxed") }},
		"empty":    {Mode: ModePackaged, ResourceDir: func() (string, error) { return "", nil }},
	}
	for name, loc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loc.Locate()
			assert.True(t, IsKind(err, KindPathResolution), "got %v", err)
		})
	}
}

func TestLocate_MissingScriptsDir(t *testing.T) {
	root := makeAssets(t)
	scripts := filepath.Join(root, "assets", "fabrik", "scripts")
	require.NoError(t, os.RemoveAll(scripts))

	_, err := packagedLocator(root).Locate()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAssetNotFound))
	assert.Contains(t, err.Error(), "scripts directory not found")
	assert.Contains(t, err.Error(), scripts)
}

func TestLocate_MissingActionsDir(t *testing.T) {
	root := makeAssets(t)
	actions := filepath.Join(root, "assets", "fabrik", "actions")
	require.NoError(t, os.RemoveAll(actions))

	_, err := packagedLocator(root).Locate()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAssetNotFound))
	assert.Contains(t, err.Error(), "actions directory not found")
	assert.Contains(t, err.Error(), actions)
}

func TestLocate_ActionsIsAFile(t *testing.T) {
	root := makeAssets(t)
	actions := filepath.Join(root, "assets", "fabrik", "actions")
	require.NoError(t, os.RemoveAll(actions))
	require.NoError(t, os.WriteFile(actions, []byte("x"), 0644))

	_, err := packagedLocator(root).Locate()
	assert.True(t, IsKind(err, KindAssetNotFound))
}

func TestRootDoesNotCheckExistence(t *testing.T) {
	root := t.TempDir()
	got, err := packagedLocator(root).Root()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik"), got)
}

func TestNewLocatorResourceRootOverride(t *testing.T) {
	root := makeAssets(t)
	layout, err := NewLocator(ModePackaged, root).Locate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets", "fabrik"), layout.Root)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, BuildMode, m)

	m, err = ParseMode("dev")
	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, m)

	m, err = ParseMode("Packaged")
	require.NoError(t, err)
	assert.Equal(t, ModePackaged, m)

	_, err = ParseMode("cloud")
	assert.Error(t, err)
}

func TestResourceDirFor(t *testing.T) {
	bundle := filepath.Join("Applications", "GraphiDesk.app", "Contents", "MacOS", "graphidesk")
	assert.Equal(t, filepath.Join("Applications", "GraphiDesk.app", "Contents", "Resources"), resourceDirFor(bundle, "darwin"))

	exe := filepath.Join("opt", "graphidesk", "graphidesk")
	assert.Equal(t, filepath.Join("opt", "graphidesk"), resourceDirFor(exe, "linux"))
}
