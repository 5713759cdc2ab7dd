package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/logging"
	"github.com/piwi3910/GraphiDesk/internal/model"
	"github.com/piwi3910/GraphiDesk/internal/project"
)

var version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	mode       string
	assetRoot  string
	logLevel   string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "fabrik",
		Short:         "Run GraphiDesk FabRik scripts in Illustrator",
		Long:          `fabrik prepares FabRik scripts with their parameters and action paths, then runs them in the external editor, the same way the GraphiDesk desktop app does.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "GraphiDesk config file")
	cmd.PersistentFlags().StringVar(&opts.mode, "mode", "", "asset mode: dev or packaged (default from config or build)")
	cmd.PersistentFlags().StringVar(&opts.assetRoot, "asset-root", "", "resource root holding assets/fabrik in packaged mode")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (default from "+logging.LevelEnv+", else warn)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	cmd.AddCommand(
		newRunCmd(opts),
		newCheckEditorCmd(opts),
		newAssetsCmd(opts),
		newScriptsCmd(opts),
		newBatchCmd(opts),
		newReportCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func (o *globalOptions) logger(errOut io.Writer) zerolog.Logger {
	level := logging.ParseLevel(o.logLevel, logging.LevelFromEnvOr(zerolog.WarnLevel))
	return logging.NewConsoleTo(errOut, level)
}

// config loads the user config and applies the asset flags over it.
func (o *globalOptions) config() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.mode != "" {
		cfg.AssetMode = o.mode
	}
	if o.assetRoot != "" {
		cfg.AssetRoot = o.assetRoot
	}
	return cfg, nil
}

func (o *globalOptions) runner(cmd *cobra.Command) (*fabrik.Runner, model.AppConfig, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, cfg, err
	}
	r, err := fabrik.NewRunnerFromConfig(cfg, o.logger(cmd.ErrOrStderr()))
	return r, cfg, err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
