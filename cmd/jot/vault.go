package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
)

// resolveVault returns --vault, or the nearest vault above the working directory.
func resolveVault() (string, error) {
	if vaultPath != "" {
		return vaultPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := jot.FindVaultRoot(wd)
	if err != nil {
		return "", fmt.Errorf("not a jot vault (run 'jot init'): %w", err)
	}
	return root, nil
}

func vaultOptions(extra ...jot.Option) []jot.Option {
	opts := []jot.Option{
		jot.WithMustExist(true),
		jot.WithLogger(slog.Default()),
	}
	if codecName != "" {
		opts = append(opts, jot.WithCodecName(codecName))
	}
	return append(opts, extra...)
}

// openReadOnly loads the vault for the viewing commands.
func openReadOnly(ctx context.Context) (*core.Service, error) {
	root, err := resolveVault()
	if err != nil {
		return nil, err
	}
	return jot.Open(ctx, root, vaultOptions(jot.WithReadOnly(true))...)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printEntries writes one line per note: the title and the first line of its body.
func printEntries(w io.Writer, entries []core.Entry) {
	for _, e := range entries {
		first, _, _ := strings.Cut(e.Body, "\n")
		fmt.Fprintf(w, "%s\t%s\n", e.Title, first)
	}
}
