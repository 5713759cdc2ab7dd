package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func newCheckEditorCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-editor [path]",
		Short: "Check that the editor executable exists",
		Long:  `Checks the given editor path, or the configured one, or the default install location when nothing is configured.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			path := cfg.EditorPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = model.DefaultEditorPath
			}
			exists := editorExists(path)
			if g.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "exists": exists})
			}
			if !exists {
				return fmt.Errorf("editor not found at %s", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Editor found at %s\n", path)
			return nil
		},
	}
}

func editorExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
