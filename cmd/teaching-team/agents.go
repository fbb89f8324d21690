// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/teaching-team/internal/agents"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Describe the teaching agents",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, a := range agents.All {
			fmt.Fprintf(out, "- %-20s %s\n", a.Name+":", a.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
