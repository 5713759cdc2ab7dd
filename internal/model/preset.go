package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable parameter set for one script.
type Preset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Script    string `json:"script"`
	Params    string `json:"params"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewPreset creates a preset for script holding the raw parameter text.
func NewPreset(name, script, params string) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Script:    script,
		Params:    params,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Request builds a ScriptRequest running the preset.
func (p Preset) Request(editorPath string) ScriptRequest {
	return ScriptRequest{
		ID:         uuid.New().String()[:8],
		EditorPath: editorPath,
		ScriptName: p.Script,
		RawParams:  p.Params,
	}
}

// PresetStore holds the saved presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []Preset{},
	}
}

// Put stores p, replacing the preset with the same name and script.
func (ps *PresetStore) Put(p Preset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name && ps.Presets[i].Script == p.Script {
			p.ID = ps.Presets[i].ID
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns the first preset with the given name, or nil. An empty
// script matches any script.
func (ps *PresetStore) FindByName(name, script string) *Preset {
	for i := range ps.Presets {
		p := &ps.Presets[i]
		if p.Name == name && (script == "" || p.Script == script) {
			return p
		}
	}
	return nil
}

// ForScript returns the presets saved for script, in insertion order.
func (ps *PresetStore) ForScript(script string) []Preset {
	var out []Preset
	for _, p := range ps.Presets {
		if p.Script == script {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the preset names for script, for UI dropdowns.
func (ps *PresetStore) Names(script string) []string {
	presets := ps.ForScript(script)
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
