// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the teaching-team CLI. It collects
// configuration (flags, environment, config file, .secrets/), runs the
// teaching agents against a local model runtime, and writes the resulting
// learning materials to disk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/teaching-team/internal/logging"
	"github.com/pdiddy/teaching-team/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger is built from --log-level before any subcommand runs.
	logger = zap.NewNop()
)

// rootCmd is the base command for the teaching-team CLI.
var rootCmd = &cobra.Command{
	Use:   "teaching-team",
	Short: "Generate learning materials with a team of local AI teaching agents",
	Long: `teaching-team asks four agents, each backed by a local Ollama model, to
prepare learning materials for a topic:

  Professor           a first-principles knowledge base
  Academic Advisor    a learning roadmap with time estimates
  Research Librarian  a resource guide curated from web search results
  Teaching Assistant  exercises and projects with assessment criteria

The results are written as plain-text documents plus one complete learning
package. Pull the model in Ollama first and supply Composio and SerpAPI keys
via flags, TEACHING_TEAM_* environment variables, a .env file, the config
file, or files in .secrets/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./teaching-team.yaml or ~/.config/teaching-team/config.yaml)")
	pf.String("model", "", fmt.Sprintf("Ollama model to use (default %s)", defaultModel()))
	pf.String("ollama-url", "", "Ollama OpenAI-compatible API root (default http://localhost:11434/v1)")
	pf.String("composio-api-key", "", "Composio API key")
	pf.String("serpapi-api-key", "", "SerpAPI key")
	pf.String("serpapi-url", "", "SerpAPI search endpoint (default https://serpapi.com/search)")
	pf.Duration("timeout", 0, "HTTP timeout for model calls (default 5m)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	bindRootFlags()
}

// rootConfigFlags are the persistent flags that double as config keys.
var rootConfigFlags = []string{"model", "ollama-url", "composio-api-key", "serpapi-api-key", "serpapi-url", "timeout", "log-level"}

func bindRootFlags() {
	pf := rootCmd.PersistentFlags()
	for _, name := range rootConfigFlags {
		_ = viper.BindPFlag(configKey(name), pf.Lookup(name))
	}
}

// configKey maps a flag name to its viper key (e.g. "ollama-url" -> "ollama_url").
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func initConfig() {
	// A missing .env is normal; values may come from the real environment.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("teaching-team")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "teaching-team"))
		}
	}

	viper.SetEnvPrefix("TEACHING_TEAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
