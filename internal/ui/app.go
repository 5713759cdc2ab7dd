package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/rs/zerolog"
	"github.com/skratchdot/open-golang/open"

	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/logging"
	"github.com/piwi3910/GraphiDesk/internal/model"
	"github.com/piwi3910/GraphiDesk/internal/project"
	"github.com/piwi3910/GraphiDesk/internal/shell"
)

// Version is shown in the About dialog.
var Version = "dev"

// Options carries the services the UI drives.
type Options struct {
	Runner     *fabrik.Runner
	Journal    *project.Journal
	Config     model.AppConfig
	ConfigPath string
	PresetPath string
	Log        zerolog.Logger
}

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	shell      *shell.Shell
	runner     *fabrik.Runner
	journal    *project.Journal
	config     model.AppConfig
	configPath string
	log        zerolog.Logger
	theme      *GraphiDeskTheme
	history    *History
	tabs       *container.AppTabs
	presets    model.PresetStore
	presetPath string

	// run panel
	editorEntry  *widget.Entry
	editorStatus *widget.Label
	scriptSelect *widget.Select
	paramsEntry  *widget.Entry
	runBtn       *widget.Button
	revealBtn    *widget.Button
	presetSelect *widget.Select
	statusLabel  *widget.Label
	progress     *widget.ProgressBarInfinite
	lastScript   string
	busy         bool

	// batch panel
	batch         []model.Job
	batchList     *widget.List
	batchProgress *widget.ProgressBar
	batchStatus   *widget.Label
	batchRunBtn   *widget.Button
	batchCancel   func()

	// run history panel
	runsList *widget.List
	runs     []model.RunRecord
}

// NewApp creates the UI for window. The shell it builds owns the close and
// tray behavior of the window.
func NewApp(application fyne.App, window fyne.Window, opts Options) *App {
	a := &App{
		app:        application,
		window:     window,
		runner:     opts.Runner,
		journal:    opts.Journal,
		config:     opts.Config,
		configPath: opts.ConfigPath,
		presetPath: opts.PresetPath,
		log:        logging.Component(opts.Log, "ui"),
		history:    NewHistory(),
	}
	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	if a.presetPath == "" {
		a.presetPath = project.DefaultPresetPath()
	}
	presets, err := project.LoadPresets(a.presetPath)
	if err != nil {
		a.log.Warn().Err(err).Str("path", a.presetPath).Msg("presets unavailable")
		presets = model.NewPresetStore()
	}
	a.presets = presets
	a.shell = shell.New(window, opts.Runner, shell.NewPreference(true), application.Quit, opts.Log)
	a.theme = NewGraphiDeskTheme(a.config.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

// Shell returns the command surface backing the window.
func (a *App) Shell() *shell.Shell { return a.shell }

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	quit := fyne.NewMenuItem("Quit", func() {
		a.shell.Handle(shell.MenuQuit)
	})
	quit.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Batch...", func() {
			a.importBatch()
		}),
		fyne.NewMenuItem("Export Run Report...", func() {
			a.exportRunReport()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Settings...", func() {
			a.showImportExportDialog()
		}),
		fyne.NewMenuItemSeparator(),
		quit,
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Parameters", func() {
			a.undoParams()
		}),
		fyne.NewMenuItem("Redo Parameters", func() {
			a.redoParams()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Open Assets Folder", func() {
			a.openAssetsFolder()
		}),
		fyne.NewMenuItem("Reload Scripts", func() {
			a.refreshScripts()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

// SetupTray installs the system tray menu when the driver supports one.
// The Show entry stands in for a click on the tray icon.
func (a *App) SetupTray() {
	desk, ok := a.app.(desktop.App)
	if !ok {
		a.log.Debug().Msg("no system tray on this driver")
		return
	}
	quit := fyne.NewMenuItem("Quit GraphiDesk", func() {
		a.shell.Handle(shell.MenuQuit)
	})
	quit.IsQuit = true
	desk.SetSystemTrayMenu(fyne.NewMenu("GraphiDesk",
		fyne.NewMenuItem("Show", func() {
			a.shell.Handle(shell.TrayActivated)
		}),
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

// InterceptClose routes window close requests through the shell, which
// hides or quits depending on the minimize-on-close preference.
func (a *App) InterceptClose() {
	a.window.SetCloseIntercept(func() {
		a.shell.Handle(shell.CloseRequested)
	})
}

// Serve delivers events posted from other goroutines (for example a second
// launch detected by the host) to the shell on the UI goroutine.
func (a *App) Serve(events <-chan shell.Event) {
	go a.shell.Serve(a.shell.Context(), events, fyne.Do)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	runTab := container.NewTabItem("FabRik", a.buildRunPanel())
	batchTab := container.NewTabItem("Batch", a.buildBatchPanel())
	runsTab := container.NewTabItem("History", a.buildRunsPanel())

	a.tabs = container.NewAppTabs(runTab, batchTab, runsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return fynetooltip.AddWindowToolTipLayer(a.tabs, a.window.Canvas())
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About GraphiDesk",
		"GraphiDesk FabRik\n\n"+
			"Prepares fabrication scripts and runs them\n"+
			"in Adobe Illustrator.\n\n"+
			"Version "+Version,
		a.window,
	)
}

func (a *App) openAssetsFolder() {
	path, err := a.shell.AssetsPath()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if err := open.Start(path); err != nil {
		dialog.ShowError(fmt.Errorf("cannot open %s: %w", path, err), a.window)
	}
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		a.log.Error().Err(err).Str("path", a.configPath).Msg("failed to save config")
		return err
	}
	return nil
}
