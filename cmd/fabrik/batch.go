package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GraphiDesk/internal/export"
	"github.com/piwi3910/GraphiDesk/internal/fabrik"
	"github.com/piwi3910/GraphiDesk/internal/importer"
)

type batchOptions struct {
	editor    string
	labels    string
	dryRun    bool
	timeout   time.Duration
	noJournal bool
}

// batchJob is one line of the --json batch output.
type batchJob struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Script  string `json:"script"`
	Params  string `json:"params,omitempty"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type batchReport struct {
	Jobs     []batchJob `json:"jobs"`
	Skipped  []string   `json:"skipped,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
	Failed   int        `json:"failed"`
}

func newBatchCmd(g *globalOptions) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <file.csv|file.xlsx>",
		Short: "Run every caisson of a CSV or Excel sheet",
		Long:  `Imports one caisson per row (label, largeur, hauteur, profondeur, lumineux, percage, quantite) and runs them one after another. A failed job does not stop the batch.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, g, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.editor, "editor", "", "editor executable (default from config)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "also write QR labels for the jobs to this PDF")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the jobs and their parameters without running them")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-job editor timeout (default from config)")
	cmd.Flags().BoolVar(&opts.noJournal, "no-journal", false, "do not record the runs in the history")
	return cmd
}

func runBatch(cmd *cobra.Command, g *globalOptions, opts *batchOptions, path string) error {
	result := importer.Import(path)
	if len(result.Jobs) == 0 {
		if len(result.Errors) > 0 {
			return fmt.Errorf("no jobs imported from %s:\n  %s", path, strings.Join(result.Errors, "\n  "))
		}
		return fmt.Errorf("no jobs found in %s", path)
	}

	if opts.labels != "" {
		if err := export.ExportJobLabels(opts.labels, result.Jobs); err != nil {
			return err
		}
	}

	rep := batchReport{Skipped: result.Errors, Warnings: result.Warnings}
	out := cmd.OutOrStdout()

	if opts.dryRun {
		for _, job := range result.Jobs {
			raw, err := job.RawParams()
			bj := batchJob{ID: job.ID, Label: job.Label, Script: job.Script, Params: raw, OK: err == nil}
			if err != nil {
				bj.Error = err.Error()
				rep.Failed++
			}
			rep.Jobs = append(rep.Jobs, bj)
		}
		return printBatch(cmd, g, rep)
	}

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

	ctx, stop := withInterrupt(cmd.Context())
	defer stop()

	total := len(result.Jobs)
	results := runner.RunJobs(ctx, editorPath(opts.editor, cfg), result.Jobs, func(done int, res fabrik.JobResult) {
		if g.jsonOutput {
			return
		}
		status := "ok"
		if res.Err != nil {
			status = "FAILED: " + res.Err.Error()
		}
		fmt.Fprintf(out, "[%d/%d] %s: %s\n", done, total, res.Job.Label, status)
	})
	for _, res := range results {
		bj := batchJob{ID: res.Job.ID, Label: res.Job.Label, Script: res.Job.Script, OK: res.Err == nil, Message: res.Message}
		if res.Err != nil {
			bj.Error = res.Err.Error()
			rep.Failed++
		}
		rep.Jobs = append(rep.Jobs, bj)
	}

	if err := printBatch(cmd, g, rep); err != nil {
		return err
	}
	if len(results) < total {
		return fmt.Errorf("batch interrupted after %d of %d jobs", len(results), total)
	}
	if rep.Failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", rep.Failed, total)
	}
	return nil
}

func printBatch(cmd *cobra.Command, g *globalOptions, rep batchReport) error {
	if g.jsonOutput {
		return printJSON(cmd.OutOrStdout(), rep)
	}
	out := cmd.OutOrStdout()
	for _, j := range rep.Jobs {
		if j.Params != "" {
			fmt.Fprintf(out, "%s\t%s\t%s\n", j.Label, j.Script, j.Params)
		}
	}
	for _, s := range rep.Skipped {
		fmt.Fprintf(out, "skipped: %s\n", s)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintf(out, "%d jobs, %d failed\n", len(rep.Jobs), rep.Failed)
	return nil
}
