// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/teaching-team/internal/agents"
	"github.com/pdiddy/teaching-team/internal/search"
	"github.com/pdiddy/teaching-team/internal/secrets"
	"github.com/pdiddy/teaching-team/internal/team"
	"github.com/pdiddy/teaching-team/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [topic...]",
	Short: "Preview the Research Librarian's web search for a topic",
	Long: `Search runs the same web query the Research Librarian issues
("learn <topic> tutorial course") and prints the results without calling
the model.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("please enter a topic")
	}
	key := teamConfig(topic).SerpAPIKey
	if key == "" {
		return &team.ConfigError{Reason: "please provide SerpAPI key (flag, environment, or .secrets/" + secrets.SerpAPIKey + ")", Err: team.ErrMissingConfig}
	}

	records := newSearcher().Search(cmd.Context(), agents.SearchQuery(topic), key)

	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		if err := search.FormatJSON(records, out); err != nil {
			return err
		}
	} else {
		search.FormatTable(records, out)
	}

	if types.SearchFailed(records) {
		return fmt.Errorf("search failed")
	}
	return nil
}
