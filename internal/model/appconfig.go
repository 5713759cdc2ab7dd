package model

// DefaultEditorPath is the install location of the vector editor on a stock
// Windows workstation. The year in the path changes with every major Adobe
// release, so users are expected to override it in the settings.
const DefaultEditorPath = `C:\Program Files\Adobe\Adobe Illustrator 2026\Support Files\Contents\Windows\Illustrator.exe`

// Asset mode overrides accepted in AppConfig.AssetMode.
const (
	AssetModeAuto     = ""
	AssetModeDev      = "dev"
	AssetModePackaged = "packaged"
)

const maxRecentScripts = 10

// AppConfig holds application-wide preferences persisted between sessions.
// The minimize-on-close preference is intentionally absent: it lives in
// memory only and resets to its default on restart.
type AppConfig struct {
	// External editor
	EditorPath        string `json:"editor_path"`
	RunTimeoutSeconds int    `json:"run_timeout_seconds"` // 0 = wait forever

	// Asset resolution overrides
	AssetMode string `json:"asset_mode"` // "", "dev", "packaged"
	AssetRoot string `json:"asset_root"` // packaged-mode resource root, empty = auto

	// Application preferences
	RecentScripts []string `json:"recent_scripts"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		EditorPath:        DefaultEditorPath,
		RunTimeoutSeconds: 0,
		AssetMode:         AssetModeAuto,
		RecentScripts:     []string{},
		Theme:             "system",
	}
}

// TouchRecentScript moves name to the front of RecentScripts, dropping
// duplicates and keeping at most ten entries.
func (c *AppConfig) TouchRecentScript(name string) {
	if name == "" {
		return
	}
	out := []string{name}
	for _, s := range c.RecentScripts {
		if s != name {
			out = append(out, s)
		}
	}
	if len(out) > maxRecentScripts {
		out = out[:maxRecentScripts]
	}
	c.RecentScripts = out
}
