package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/config"
)

var cfgFile string

// rootCmd is the base command, following the teacher's cmd/root.go
// shape: a persistent --config flag, global logging/dry-run flags that
// loadConfig layers onto the Config internal/config loads, and
// subcommands for each mode of operation.
var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "An AI-driven action assistant: plan, execute, verify and retry",
	Long: `assistant turns a natural-language request into either a
verified sequence of desktop actions (file, GUI, registry, OCR, shell,
subprocess) or a sandbox-verified Python program, backed by persistent
memory and retrieval-augmented planning.`,
}

// Execute adds all child commands to rootCmd and runs it. Called once
// from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.windows-ai-assistant.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format override (text, json)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "run adapters in dry-run mode without side effects")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads config.Load(cfgFile) and layers in any CLI flag
// overrides the command was invoked with.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		cfg.DryRun = true
	}

	return cfg, nil
}
