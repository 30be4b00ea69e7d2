package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the store (and its git repository with --versioning)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		location := resolveStore()
		opts := append(sessionOptions(cmd), jotter.WithAutoInit(true))

		store, err := jotter.Init(context.Background(), location, opts...)
		if err != nil {
			fatal("Failed to initialize store", err)
		}
		defer store.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s store at %s\n", resolveBackend(), location)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
