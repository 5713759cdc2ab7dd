package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScriptsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List the scripts in the assets folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := g.runner(cmd)
			if err != nil {
				return err
			}
			names, err := runner.Scripts()
			if err != nil {
				return err
			}
			if g.jsonOutput {
				if names == nil {
					names = []string{}
				}
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
