package fabrik

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/piwi3910/GraphiDesk/internal/logging"
	"github.com/piwi3910/GraphiDesk/internal/model"
)

// Recorder receives the outcome of every run.
type Recorder interface {
	Record(rec model.RunRecord) error
}

// Runner executes the script pipeline: locate assets, merge parameters,
// materialize the script and invoke the editor, strictly in that order.
type Runner struct {
	Locator      Locator
	Materializer Materializer
	Invoker      Invoker
	Recorder     Recorder // optional
	Log          zerolog.Logger

	now func() time.Time
}

// NewRunner creates a Runner with default materializer and invoker settings.
func NewRunner(loc Locator, log zerolog.Logger) *Runner {
	return &Runner{
		Locator: loc,
		Log:     logging.Component(log, "fabrik"),
		now:     time.Now,
	}
}

// NewRunnerFromConfig builds a Runner honoring the asset overrides and the
// run timeout of cfg.
func NewRunnerFromConfig(cfg model.AppConfig, log zerolog.Logger) (*Runner, error) {
	mode, err := ParseMode(cfg.AssetMode)
	if err != nil {
		return nil, err
	}
	r := NewRunner(NewLocator(mode, cfg.AssetRoot), log)
	if cfg.RunTimeoutSeconds > 0 {
		r.Invoker.Timeout = time.Duration(cfg.RunTimeoutSeconds) * time.Second
	}
	return r, nil
}

// RunScript runs req.ScriptName in the editor at req.EditorPath. The
// returned text confirms success; every failure is a *Error.
func (r *Runner) RunScript(ctx context.Context, req model.ScriptRequest) (string, error) {
	rec := model.NewRunRecord(req.ID, req.ScriptName, r.clock())
	if req.ID == "" {
		req.ID = rec.ID
	}
	log := r.Log.With().Str("run", req.ID).Str("script", req.ScriptName).Logger()

	msg, scriptPath, err := r.run(ctx, req, log)

	rec.ScriptPath = scriptPath
	rec.Finish(r.clock(), msg, err)
	if err != nil {
		log.Warn().Err(err).Str("kind", KindOf(err).String()).Msg("script run failed")
	} else {
		log.Info().Str("temp_script", scriptPath).Float64("duration_s", rec.Duration).Msg("script run succeeded")
	}
	if r.Recorder != nil {
		if rerr := r.Recorder.Record(rec); rerr != nil {
			log.Error().Err(rerr).Msg("failed to record run")
		}
	}
	return msg, err
}

func (r *Runner) run(ctx context.Context, req model.ScriptRequest, log zerolog.Logger) (string, string, error) {
	if err := checkScriptName(req.ScriptName); err != nil {
		return "", "", err
	}

	layout, err := r.Locator.Locate()
	if err != nil {
		return "", "", err
	}
	log.Debug().Str("scripts", layout.ScriptsDir).Str("actions", layout.ActionsDir).Msg("assets located")

	actions := model.NewActionPathSet(layout.ActionsDir)
	params, ok := SpliceParams(req.RawParams, actions)
	if !ok {
		log.Warn().Msg("params did not accept action paths; passing them through unchanged")
	}

	script, err := r.Materializer.Materialize(layout.ScriptPath(req.ScriptName), params, actions, req.ID)
	if err != nil {
		return "", "", err
	}
	log.Debug().Str("temp_script", script.Path).Msg("script materialized")

	msg, err := r.Invoker.Invoke(ctx, req.EditorPath, script.Path)
	return msg, script.Path, err
}

// AssetsPath returns the fabrik asset root for the configured mode.
func (r *Runner) AssetsPath() (string, error) {
	return r.Locator.Root()
}

// Scripts lists the .jsx scripts available in the scripts directory.
func (r *Runner) Scripts() ([]string, error) {
	layout, err := r.Locator.Locate()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(layout.ScriptsDir)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "cannot list scripts", Path: layout.ScriptsDir, Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jsx") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (r *Runner) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// checkScriptName rejects names that would leave the scripts directory.
func checkScriptName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return &Error{Kind: KindIO, Op: "invalid script name", Path: name, Err: os.ErrInvalid}
	}
	return nil
}
