package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/model"
	"github.com/piwi3910/GraphiDesk/internal/project"
)

type runOptions struct {
	editor     string
	params     string
	paramsFile string
	preset     string
	presetPath string
	timeout    time.Duration
	noJournal  bool
}

// runResult is printed with --json.
type runResult struct {
	ID      string `json:"id"`
	Script  string `json:"script"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func newRunCmd(g *globalOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run one script in the editor",
		Long:  `Materializes the script with its parameters and action paths, then runs it in the editor and waits for it to exit.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, g, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.editor, "editor", "", "editor executable (default from config)")
	cmd.Flags().StringVar(&opts.params, "params", "{}", "script parameters as a JSON object")
	cmd.Flags().StringVar(&opts.paramsFile, "params-file", "", "read the parameters from a file (- for stdin)")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "use the parameters of a preset saved in the desktop app")
	cmd.Flags().StringVar(&opts.presetPath, "presets", project.DefaultPresetPath(), "preset file")
	cmd.MarkFlagsMutuallyExclusive("preset", "params-file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "give up waiting for the editor after this long (default from config)")
	cmd.Flags().BoolVar(&opts.noJournal, "no-journal", false, "do not record the run in the history")
	return cmd
}

func runRun(cmd *cobra.Command, g *globalOptions, opts *runOptions, script string) error {
	runner, cfg, err := g.runner(cmd)
	if err != nil {
		return err
	}
	if opts.timeout > 0 {
		runner.Invoker.Timeout = opts.timeout
	}
	if !opts.noJournal {
		if err := attachJournal(runner); err != nil {
			return err
		}
	}

	raw, err := readParams(cmd, opts, script)
	if err != nil {
		return err
	}
	req := model.ScriptRequest{
		ID:         uuid.New().String()[:8],
		EditorPath: editorPath(opts.editor, cfg),
		ScriptName: script,
		RawParams:  raw,
	}

	ctx, stop := withInterrupt(cmd.Context())
	defer stop()

	msg, runErr := runner.RunScript(ctx, req)
	return report(cmd, g, req, msg, runErr)
}

func report(cmd *cobra.Command, g *globalOptions, req model.ScriptRequest, msg string, runErr error) error {
	if g.jsonOutput {
		res := runResult{ID: req.ID, Script: req.ScriptName, OK: runErr == nil, Message: msg}
		if runErr != nil {
			res.Error = runErr.Error()
			res.Kind = fabrik.KindOf(runErr).String()
		}
		if err := printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		return runErr
	}
	if runErr != nil {
		return runErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func readParams(cmd *cobra.Command, opts *runOptions, script string) (string, error) {
	if opts.preset != "" {
		store, err := project.LoadPresets(opts.presetPath)
		if err != nil {
			return "", fmt.Errorf("cannot read presets: %w", err)
		}
		p := store.FindByName(opts.preset, script)
		if p == nil {
			return "", fmt.Errorf("no preset %q for %s", opts.preset, script)
		}
		return p.Params, nil
	}
	switch opts.paramsFile {
	case "":
		return opts.params, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("cannot read parameters from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(opts.paramsFile)
		if err != nil {
			return "", fmt.Errorf("cannot read parameters: %w", err)
		}
		return string(data), nil
	}
}

func editorPath(flag string, cfg model.AppConfig) string {
	if p := strings.TrimSpace(flag); p != "" {
		return p
	}
	return cfg.EditorPath
}

func attachJournal(runner *fabrik.Runner) error {
	journal, err := project.OpenJournal(project.DefaultJournalPath())
	if err != nil {
		return fmt.Errorf("run history unavailable (use --no-journal): %w", err)
	}
	runner.Recorder = journal
	return nil
}

func withInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
