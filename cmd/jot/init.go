package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a jot vault",
	Long:  `Initialize a new vault in --vault or the current directory. With --codec, the choice is recorded in jot.yaml.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := vaultPath
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			path = cwd
		}

		opts := []jot.Option{jot.WithAutoInit(true), jot.WithLogger(slog.Default())}
		if codecName != "" {
			opts = append(opts, jot.WithCodecName(codecName))
		}
		// New validates the codec name before anything is recorded.
		if _, err := jot.New(path, opts...); err != nil {
			return fmt.Errorf("failed to initialize vault: %w", err)
		}

		if codecName != "" {
			cfg, err := platform.LoadConfig(path)
			if err != nil {
				return err
			}
			cfg.Codec = codecName
			if err := platform.WriteConfig(path, cfg); err != nil {
				return fmt.Errorf("failed to write %s: %w", platform.ConfigFile, err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty jot vault in", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
