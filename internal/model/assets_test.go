package model

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssetLayout(t *testing.T) {
	root := filepath.Join("opt", "graphidesk", "assets", "fabrik")
	l := NewAssetLayout(root)

	assert.Equal(t, root, l.Root)
	assert.Equal(t, filepath.Join(root, "scripts"), l.ScriptsDir)
	assert.Equal(t, filepath.Join(root, "actions"), l.ActionsDir)
	assert.Equal(t, filepath.Join(root, "scripts", "caisson_generation.jsx"), l.ScriptPath("caisson_generation.jsx"))
}

func TestNewActionPathSet_OrderAndKeys(t *testing.T) {
	set := NewActionPathSet(filepath.Join("x", "actions"))
	require.Len(t, set, 5)

	want := []string{
		"vectoTexteActionPath",
		"vectoContourActionPath",
		"offsetActionPath",
		"pathfinderUnionActionPath",
		"cutContourActionPath",
	}
	for i, a := range set {
		assert.Equal(t, want[i], a.Key())
	}
	assert.True(t, strings.HasSuffix(set[0].Path, "actions/Vecto_Texte.aia"))
	assert.True(t, strings.HasSuffix(set[4].Path, "actions/CutContour.aia"))
}

func TestNewActionPathSet_ForwardSlashes(t *testing.T) {
	set := NewActionPathSet(`C:\GraphiDesk\assets\fabrik\actions`)
	for _, a := range set {
		assert.NotContains(t, a.Path, `\`, "action %s should use forward slashes", a.Name)
	}
	p, ok := set.Lookup("offset")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(p, "C:/GraphiDesk/assets/fabrik/actions/"))
}

func TestActionPathSetLookupMissing(t *testing.T) {
	set := NewActionPathSet("actions")
	_, ok := set.Lookup("nope")
	assert.False(t, ok)
}
