package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var (
	createTitle string
	createBody  string
)

var createCmd = &cobra.Command{
	Use:   "create [body...]",
	Short: "Create or overwrite a note",
	Long: `Create saves a note under --title. Without a title, the first word of the body is used.
The body comes from --body or from the remaining arguments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body := createBody
		if body == "" {
			body = strings.Join(args, " ")
		}

		root, err := resolveVault()
		if err != nil {
			return err
		}

		var (
			mu      sync.Mutex
			saveErr error
		)
		svc, err := jot.Open(cmd.Context(), root, vaultOptions(
			jot.WithSaveErrorHandler(func(err error) {
				mu.Lock()
				defer mu.Unlock()
				saveErr = err
			}),
		)...)
		if err != nil {
			return err
		}

		note, err := svc.Create(cmd.Context(), createTitle, body)
		if err != nil {
			return err
		}
		svc.Wait()

		mu.Lock()
		defer mu.Unlock()
		if saveErr != nil {
			return fmt.Errorf("note %q was not saved: %w", note.Title, saveErr)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note '%s' saved.\n", note.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Note title (default: first word of the body)")
	createCmd.Flags().StringVarP(&createBody, "body", "b", "", "Note body")
}
