// GraphiDesk FabRik desktop application
//
// Prepares fabrication scripts (caissons, lettres boitiers) and runs them
// in Adobe Illustrator. Closing the window hides it to the system tray
// unless minimize-on-close is turned off.
//
// Build:
//   go build -o graphidesk ./cmd/graphidesk
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -ldflags "-X main.version=1.0.0" -o graphidesk.exe ./cmd/graphidesk
//
// Development builds resolve assets from the source tree:
//   go build -tags dev -o target/debug/graphidesk ./cmd/graphidesk
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/logging"
	"github.com/piwi3910/GraphiDesk/internal/project"
	"github.com/piwi3910/GraphiDesk/internal/shell"
	"github.com/piwi3910/GraphiDesk/internal/ui"
)

var version = "dev"

func main() {
	log := logging.NewConsole(logging.LevelFromEnv())

	configPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("using default config")
	}

	runner, err := fabrik.NewRunnerFromConfig(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("invalid asset mode in config, using build default")
		cfg.AssetMode = ""
		runner, _ = fabrik.NewRunnerFromConfig(cfg, log)
	}

	journal, err := project.OpenJournal(project.DefaultJournalPath())
	if err != nil {
		log.Error().Err(err).Msg("run history unavailable")
	} else {
		runner.Recorder = journal
	}

	ui.Version = version
	application := app.NewWithID("com.piwi3910.graphidesk")
	window := application.NewWindow("GraphiDesk FabRik")

	appUI := ui.NewApp(application, window, ui.Options{
		Runner:     runner,
		Journal:    journal,
		Config:     cfg,
		ConfigPath: configPath,
		Log:        log,
	})
	appUI.SetupMenus()
	appUI.SetupTray()
	appUI.InterceptClose()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(900, 640))
	window.CenterOnScreen()

	events := make(chan shell.Event, 1)
	appUI.Serve(events)
	go forwardSignals(events)

	log.Info().Str("version", version).Str("config", configPath).Msg("GraphiDesk started")
	window.ShowAndRun()

	appUI.Shell().Quit()
	waitForRuns(appUI.Shell(), 5*time.Second)
	log.Info().Msg("GraphiDesk stopped")
}

// waitForRuns gives canceled runs time to stop their editor process.
func waitForRuns(s *shell.Shell, limit time.Duration) {
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
	}
}

// forwardSignals turns SIGINT and SIGTERM into a quit request so a run in
// progress is canceled and the editor process is not left behind.
func forwardSignals(events chan<- shell.Event) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	for range sig {
		select {
		case events <- shell.MenuQuit:
		default:
		}
	}
}
