// Package shell holds the application state shared by the window, the tray
// menu and the script commands. UI callbacks deliver events to a Shell,
// which decides whether to hide, show or quit.
package shell

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/piwi3910/GraphiDesk/internal/logging"
	"github.com/piwi3910/GraphiDesk/internal/model"
)

// Window is the part of the main window the shell drives.
type Window interface {
	Show()
	Hide()
	RequestFocus()
}

// ScriptRunner runs scripts in the external editor.
type ScriptRunner interface {
	RunScript(ctx context.Context, req model.ScriptRequest) (string, error)
	AssetsPath() (string, error)
}

// Shell is the command surface of the desktop app.
type Shell struct {
	window Window
	runner ScriptRunner
	pref   *Preference
	exit   func()
	log    zerolog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	quitOnce sync.Once
	runs     sync.WaitGroup
}

// New creates a shell driving window. exit terminates the host event loop;
// it is called once, from Quit.
func New(window Window, runner ScriptRunner, pref *Preference, exit func(), log zerolog.Logger) *Shell {
	if pref == nil {
		pref = NewPreference(true)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Shell{
		window: window,
		runner: runner,
		pref:   pref,
		exit:   exit,
		log:    logging.Component(log, "shell"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handle applies one event. It must be called on the UI goroutine.
func (s *Shell) Handle(ev Event) {
	s.log.Debug().Stringer("event", ev).Msg("event")
	switch ev {
	case CloseRequested:
		if s.pref.Get() {
			s.window.Hide()
			return
		}
		s.Quit()
	case TrayActivated, MenuShow, SecondInstance:
		s.window.Show()
		s.window.RequestFocus()
	case MenuQuit:
		s.Quit()
	default:
		s.log.Warn().Int("event", int(ev)).Msg("unknown event ignored")
	}
}

// Serve handles events from ch until ch is closed or ctx is done. dispatch
// runs each handler on the UI goroutine; nil calls Handle directly.
func (s *Shell) Serve(ctx context.Context, ch <-chan Event, dispatch func(func())) {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			dispatch(func() { s.Handle(ev) })
		}
	}
}

// Quit cancels in-flight runs and terminates the app. Later calls do
// nothing.
func (s *Shell) Quit() {
	s.quitOnce.Do(func() {
		s.log.Info().Msg("quitting")
		s.cancel()
		if s.exit != nil {
			s.exit()
		}
	})
}

// Context is canceled when the shell quits. Long-running work started
// outside RunScript should derive from it.
func (s *Shell) Context() context.Context { return s.ctx }

// Done is closed once Quit has been called.
func (s *Shell) Done() <-chan struct{} { return s.ctx.Done() }

// Wait blocks until every asynchronous run has returned.
func (s *Shell) Wait() { s.runs.Wait() }

// SetMinimizeOnClose chooses between hiding and quitting on close.
func (s *Shell) SetMinimizeOnClose(minimize bool) {
	s.pref.Set(minimize)
	s.log.Debug().Bool("minimize_on_close", minimize).Msg("preference changed")
}

// MinimizeOnClose reports the current close behavior.
func (s *Shell) MinimizeOnClose() bool { return s.pref.Get() }

// EditorDefaultPath returns the usual Illustrator install location.
func (s *Shell) EditorDefaultPath() string { return model.DefaultEditorPath }

// CheckEditorExists reports whether something exists at path.
func (s *Shell) CheckEditorExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// AssetsPath returns the asset root the runner resolves scripts from.
func (s *Shell) AssetsPath() (string, error) { return s.runner.AssetsPath() }

// RunScript runs scriptName in the editor and blocks until it exits. The run
// is canceled when ctx is done or the shell quits.
func (s *Shell) RunScript(ctx context.Context, editorPath, scriptName, rawParams string) (string, error) {
	return s.Run(ctx, model.ScriptRequest{
		EditorPath: editorPath,
		ScriptName: scriptName,
		RawParams:  rawParams,
	})
}

// Run is RunScript for a prepared request.
func (s *Shell) Run(ctx context.Context, req model.ScriptRequest) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	return s.runner.RunScript(ctx, req)
}

// RunScriptAsync runs req on its own goroutine and passes the outcome to
// done from that goroutine. Callers update the UI through fyne.Do.
func (s *Shell) RunScriptAsync(req model.ScriptRequest, done func(msg string, err error)) {
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		msg, err := s.Run(s.ctx, req)
		if done != nil {
			done(msg, err)
		}
	}()
}
