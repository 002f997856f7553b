package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the notes every time they change on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveVault()
		if err != nil {
			return err
		}

		svc, err := jot.New(root, vaultOptions(jot.WithReadOnly(true))...)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		stream, err := svc.Load(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for entries := range stream {
			titles := make([]string, 0, len(entries))
			for _, e := range entries {
				titles = append(titles, e.Title)
			}
			fmt.Fprintf(out, "%d notes: %s\n", len(entries), strings.Join(titles, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
