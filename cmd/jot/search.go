package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	searchJSON bool
	searchGlob string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find notes by text or title pattern",
	Long: `Search lists the notes whose title or body contains the query, ignoring case.
With --glob, only notes whose title matches the pattern (e.g. "meet*") are considered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		if query == "" && searchGlob == "" {
			return errors.New("a query or --glob is required")
		}

		svc, err := openReadOnly(cmd.Context())
		if err != nil {
			return err
		}

		found := svc.Search(query)
		if searchGlob != "" {
			matched, err := svc.Match(searchGlob)
			if err != nil {
				return err
			}
			found = intersect(found, matched)
		}

		if searchJSON {
			return printJSON(cmd.OutOrStdout(), found)
		}
		printEntries(cmd.OutOrStdout(), found)
		return nil
	},
}

func intersect(a, b []core.Entry) []core.Entry {
	keep := make(map[string]bool, len(b))
	for _, e := range b {
		keep[e.Title] = true
	}
	var out []core.Entry
	for _, e := range a {
		if keep[e.Title] {
			out = append(out, e)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().StringVar(&searchGlob, "glob", "", "Only titles matching this glob pattern")
}
