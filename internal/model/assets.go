package model

import (
	"path/filepath"
	"strings"
)

// AssetLayout is the resolved pair of directories holding editor scripts
// and editor action definitions.
type AssetLayout struct {
	Root       string // <root>/assets/fabrik
	ScriptsDir string // <root>/assets/fabrik/scripts
	ActionsDir string // <root>/assets/fabrik/actions
}

// NewAssetLayout derives the scripts and actions directories from the
// fabrik asset root.
func NewAssetLayout(root string) AssetLayout {
	return AssetLayout{
		Root:       root,
		ScriptsDir: filepath.Join(root, "scripts"),
		ActionsDir: filepath.Join(root, "actions"),
	}
}

// ScriptPath returns the path of a script inside the scripts directory.
func (l AssetLayout) ScriptPath(name string) string {
	return filepath.Join(l.ScriptsDir, name)
}

// Action is a named, prebuilt automation routine recognized by the editor.
type Action struct {
	Name string // parameter name prefix, e.g. "vectoTexte"
	File string // file name inside the actions directory
}

// Actions lists the editor actions in the order they are handed to scripts.
var Actions = []Action{
	{Name: "vectoTexte", File: "Vecto_Texte.aia"},
	{Name: "vectoContour", File: "Vecto_Contour.aia"},
	{Name: "offset", File: "OffsetSet.aia"},
	{Name: "pathfinderUnion", File: "PathfinderUnion.aia"},
	{Name: "cutContour", File: "CutContour.aia"},
}

// ActionPath is one resolved action file.
type ActionPath struct {
	Name string
	Path string // forward-slash separated
}

// Key returns the script parameter key for this action.
func (a ActionPath) Key() string {
	return a.Name + "ActionPath"
}

// ActionPathSet is the fixed, ordered set of resolved action files.
type ActionPathSet []ActionPath

// NewActionPathSet resolves every action against actionsDir. Paths use
// forward slashes regardless of the host OS because they are consumed by
// the editor's script interpreter, not by a shell.
func NewActionPathSet(actionsDir string) ActionPathSet {
	set := make(ActionPathSet, 0, len(Actions))
	for _, a := range Actions {
		p := filepath.Join(actionsDir, a.File)
		set = append(set, ActionPath{
			Name: a.Name,
			Path: strings.ReplaceAll(p, `\`, "/"),
		})
	}
	return set
}

// Lookup returns the path of the named action.
func (s ActionPathSet) Lookup(name string) (string, bool) {
	for _, a := range s {
		if a.Name == name {
			return a.Path, true
		}
	}
	return "", false
}
