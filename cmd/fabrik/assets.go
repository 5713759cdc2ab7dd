package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

type assetsReport struct {
	Mode       string            `json:"mode"`
	Root       string            `json:"root"`
	ScriptsDir string            `json:"scripts_dir"`
	ActionsDir string            `json:"actions_dir"`
	Actions    map[string]string `json:"actions"`
}

func newAssetsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "Show where the script and action assets are resolved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := g.runner(cmd)
			if err != nil {
				return err
			}
			layout, err := runner.Locator.Locate()
			if err != nil {
				return err
			}
			actions := model.NewActionPathSet(layout.ActionsDir)

			if g.jsonOutput {
				rep := assetsReport{
					Mode:       runner.Locator.Mode.String(),
					Root:       layout.Root,
					ScriptsDir: layout.ScriptsDir,
					ActionsDir: layout.ActionsDir,
					Actions:    make(map[string]string, len(actions)),
				}
				for _, a := range actions {
					rep.Actions[a.Name] = a.Path
				}
				return printJSON(cmd.OutOrStdout(), rep)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mode:    %s\n", runner.Locator.Mode)
			fmt.Fprintf(out, "Root:    %s\n", layout.Root)
			fmt.Fprintf(out, "Scripts: %s\n", layout.ScriptsDir)
			fmt.Fprintf(out, "Actions: %s\n", layout.ActionsDir)
			for _, a := range actions {
				fmt.Fprintf(out, "  %-16s %s\n", a.Name, a.Path)
			}
			return nil
		},
	}
}
