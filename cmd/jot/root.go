package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	vaultPath string
	codecName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A tiny note keeper",
	Long: `jot keeps short text notes, keyed by title, in a local vault.
All notes are stored together under a single key of a key-value store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault directory (default: nearest vault above the working directory)")
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", "", "Codec for the notes: legacy, json or yaml (default: from jot.yaml, else legacy)")
}
