package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GraphiDesk/internal/export"
	"github.com/piwi3910/GraphiDesk/internal/project"
)

func newReportCmd(g *globalOptions) *cobra.Command {
	var (
		journalPath string
		last        int
		clearAfter  bool
	)
	cmd := &cobra.Command{
		Use:   "report <out.pdf>",
		Short: "Export the run history as a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := project.OpenJournal(journalPath)
			if err != nil {
				return err
			}
			runs := journal.Last(last)
			if len(runs) == 0 {
				return fmt.Errorf("no runs recorded in %s", journal.Path())
			}
			if err := export.ExportRunReport(args[0], runs, time.Now()); err != nil {
				return err
			}
			s := export.Summarize(runs)
			if g.jsonOutput {
				if err := printJSON(cmd.OutOrStdout(), map[string]any{"path": args[0], "summary": s}); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d runs (%d succeeded, %d failed) to %s\n",
					s.Total, s.Succeeded, s.Failed, args[0])
			}
			if clearAfter {
				return journal.Clear()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&journalPath, "journal", project.DefaultJournalPath(), "run history file")
	cmd.Flags().IntVar(&last, "last", 0, "only report the newest N runs (0 = all)")
	cmd.Flags().BoolVar(&clearAfter, "clear", false, "clear the history after writing the report")
	return cmd
}
