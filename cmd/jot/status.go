package main

import (
	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the internal state of the vault as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openReadOnly(cmd.Context())
		if err != nil {
			return err
		}

		state := map[string]any{"service": svc.State()}
		if intro, ok := svc.KeyValueStore().(introspection.Introspectable); ok {
			state["store"] = intro.State()
		}
		return printJSON(cmd.OutOrStdout(), state)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
