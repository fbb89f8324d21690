// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/teaching-team/internal/team"
	"github.com/pdiddy/teaching-team/pkg/types"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available in the Ollama runtime",
	Long: `Models lists the runtime's model inventory. The selected model is marked
with '*'; models from the recommended list are tagged. Missing recommended
models are listed so they can be pulled.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	selected := teamConfig("").Model

	available, err := newRuntime().ListModels(cmd.Context())
	if err != nil {
		return &team.ConfigError{Reason: fmt.Sprintf("connecting to model runtime: %v", err), Err: team.ErrRuntimeUnavailable}
	}

	out := cmd.OutOrStdout()
	present := make(map[string]bool, len(available))
	for _, m := range available {
		present[m] = true
		mark := " "
		if m == selected {
			mark = "*"
		}
		tag := ""
		if types.IsKnownModel(m) {
			tag = "  (recommended)"
		}
		fmt.Fprintf(out, "%s %s%s\n", mark, m, tag)
	}
	if len(available) == 0 {
		fmt.Fprintln(out, "No models installed.")
	}

	var missing []string
	for _, m := range types.KnownModels {
		if !present[m] {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintln(out, "\nNot pulled:")
		for _, m := range missing {
			fmt.Fprintf(out, "  %s  (ollama pull %s)\n", m, m)
		}
	}

	if !present[selected] {
		return fmt.Errorf("selected model %s is not available", selected)
	}
	return nil
}
