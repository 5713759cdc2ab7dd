package fabrik

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// Mode selects how the asset root is located.
type Mode int

const (
	// ModeDevelopment walks up from the executable to the source tree.
	ModeDevelopment Mode = iota + 1
	// ModePackaged uses the resource directory of the installed application.
	ModePackaged
)

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return model.AssetModeDev
	case ModePackaged:
		return model.AssetModePackaged
	default:
		return "unknown"
	}
}

// ParseMode maps a config/flag value to a Mode. The empty string selects
// the build default.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case model.AssetModeAuto:
		return BuildMode, nil
	case model.AssetModeDev, "development":
		return ModeDevelopment, nil
	case model.AssetModePackaged, "release":
		return ModePackaged, nil
	default:
		return 0, fmt.Errorf("unknown asset mode %q", s)
	}
}

// assetSubpath is appended to the development or packaged root.
var assetSubpath = filepath.Join("assets", "fabrik")

// devLevels is the number of parent directories between the development
// executable and the directory holding assets/ (e.g. <root>/target/debug/<exe>).
const devLevels = 3

// Locator resolves the AssetLayout for the running application.
type Locator struct {
	Mode Mode
	// Executable returns the path of the running executable.
	Executable func() (string, error)
	// ResourceDir returns the packaged resource directory.
	ResourceDir func() (string, error)
}

// NewLocator returns a Locator for mode using the process executable and the
// default packaged resource directory. A non-empty resourceRoot replaces the
// packaged resource directory.
func NewLocator(mode Mode, resourceRoot string) Locator {
	l := Locator{
		Mode:        mode,
		Executable:  os.Executable,
		ResourceDir: DefaultResourceDir,
	}
	if resourceRoot != "" {
		l.ResourceDir = func() (string, error) { return resourceRoot, nil }
	}
	return l
}

// Root returns the fabrik asset root without checking it exists.
func (l Locator) Root() (string, error) {
	switch l.Mode {
	case ModeDevelopment:
		exe, err := l.Executable()
		if err != nil {
			return "", &Error{Kind: KindPathResolution, Op: "cannot determine executable path", Err: err}
		}
		base, err := ancestor(exe, devLevels)
		if err != nil {
			return "", &Error{Kind: KindPathResolution, Op: "cannot find development root", Path: exe, Err: err}
		}
		return filepath.Join(base, assetSubpath), nil
	case ModePackaged:
		if l.ResourceDir == nil {
			return "", &Error{Kind: KindPathResolution, Op: "no resource directory available"}
		}
		dir, err := l.ResourceDir()
		if err != nil {
			return "", &Error{Kind: KindPathResolution, Op: "cannot determine resource directory", Err: err}
		}
		if dir == "" {
			return "", &Error{Kind: KindPathResolution, Op: "no resource directory available"}
		}
		return filepath.Join(dir, assetSubpath), nil
	default:
		return "", &Error{Kind: KindPathResolution, Op: fmt.Sprintf("unsupported asset mode %d", l.Mode)}
	}
}

// Locate resolves the layout and checks that both the scripts and the
// actions directories exist.
func (l Locator) Locate() (model.AssetLayout, error) {
	root, err := l.Root()
	if err != nil {
		return model.AssetLayout{}, err
	}
	layout := model.NewAssetLayout(root)

	if err := requireDir("scripts", layout.ScriptsDir); err != nil {
		return model.AssetLayout{}, err
	}
	if err := requireDir("actions", layout.ActionsDir); err != nil {
		return model.AssetLayout{}, err
	}
	return layout, nil
}

func requireDir(name, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	info, err := os.Stat(abs)
	if err != nil {
		return &Error{Kind: KindAssetNotFound, Op: name + " directory not found", Path: abs, Err: err}
	}
	if !info.IsDir() {
		return &Error{Kind: KindAssetNotFound, Op: name + " directory not found", Path: abs, Err: errors.New("not a directory")}
	}
	return nil
}

// ancestor walks n parent directories up from path.
func ancestor(path string, n int) (string, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for i := 0; i < n; i++ {
		parent := filepath.Dir(p)
		if parent == p {
			return "", fmt.Errorf("%s has no parent directory (level %d of %d)", p, i+1, n)
		}
		p = parent
	}
	return p, nil
}

// DefaultResourceDir returns the directory holding bundled resources: the
// executable's directory, or Contents/Resources inside a macOS app bundle.
func DefaultResourceDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return resourceDirFor(exe, runtime.GOOS), nil
}

func resourceDirFor(exe, goos string) string {
	dir := filepath.Dir(exe)
	if goos == "darwin" && filepath.Base(dir) == "MacOS" && filepath.Base(filepath.Dir(dir)) == "Contents" {
		return filepath.Join(filepath.Dir(dir), "Resources")
	}
	return dir
}
