// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/teaching-team/internal/export"
	"github.com/pdiddy/teaching-team/internal/team"
	"github.com/pdiddy/teaching-team/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic...]",
	Short: "Generate a learning package for a topic",
	Long: `Generate checks that the selected model is available, runs the four
teaching agents, and writes one document per agent plus a complete learning
package to the output directory. File names end in a shared timestamp
(YYYYMMDD_HHMMSS). A manifest records the run and the raw search results.

An agent whose model call fails still produces a document containing the
error message; use --strict to exit non-zero in that case.`,
	Example: `  teaching-team generate "Python Programming"
  teaching-team generate --model mistral:latest --show Machine Learning`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "topic to learn about (alternative to positional arguments)")
	generateCmd.Flags().String("output-dir", defaultOutputDir, "directory for generated documents")
	generateCmd.Flags().Int("concurrency", defaultConcurrency, "number of agents to run at once (1 runs them in sequence)")
	generateCmd.Flags().Bool("show", false, "print every agent's output after writing the files")
	generateCmd.Flags().Bool("strict", false, "exit non-zero when any agent failed")

	bindGenerateFlags()

	rootCmd.AddCommand(generateCmd)
}

func bindGenerateFlags() {
	_ = viper.BindPFlag("output_dir", generateCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("concurrency", generateCmd.Flags().Lookup("concurrency"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = strings.Join(args, " ")
	}
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("please enter a topic")
	}
	show, _ := cmd.Flags().GetBool("show")
	strict, _ := cmd.Flags().GetBool("strict")
	outputDir := viper.GetString("output_dir")
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	cfg := teamConfig(topic)
	if !types.IsKnownModel(cfg.Model) {
		logger.Warn("model is not in the known model list; continuing if the runtime has it",
			zap.String("model", cfg.Model), zap.Strings("known", types.KnownModels))
	}

	runner := &team.Runner{
		LLM:      newRuntime(),
		Search:   newSearcher(),
		Logger:   logger,
		Progress: os.Stderr,
	}

	pkg, err := runner.Generate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Download learning materials:")
	if _, err := export.Write(pkg, cfg.Model, outputDir, out); err != nil {
		return err
	}

	if show {
		printResults(out, pkg, cfg.Model)
	}

	failed := pkg.Failures()
	if len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d agent(s) failed: %s\n", len(failed), joinRoles(failed))
		if strict {
			return fmt.Errorf("%d agent(s) failed", len(failed))
		}
	}
	return nil
}

// displayHeadings are the on-screen section titles for --show.
var displayHeadings = map[types.AgentRole]string{
	types.RoleProfessor: "🎓 Professor's Knowledge Base:",
	types.RoleAdvisor:   "🗺️ Academic Advisor's Learning Roadmap:",
	types.RoleLibrarian: "📚 Research Librarian's Resource Guide:",
	types.RoleAssistant: "🎯 Teaching Assistant's Practice Materials:",
}

// printResults writes each agent's content under its display heading.
func printResults(w io.Writer, pkg *types.Package, model string) {
	for _, r := range pkg.Results {
		fmt.Fprintf(w, "\n### %s\n\n%s\n\n%s\n", displayHeadings[r.Role], r.Content, strings.Repeat("-", 72))
	}
	fmt.Fprintf(w, "\nUsing Ollama model: %s\n", model)
}

func joinRoles(roles []types.AgentRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
