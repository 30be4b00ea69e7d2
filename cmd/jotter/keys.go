package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys [pattern]",
	Short: "List the slots of the configured store",
	Long: `List the slots of the configured store. The optional pattern uses glob
syntax ("work/*", "**").`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx := context.Background()
		sess := openSession(ctx, cmd)
		defer sess.Close()

		keys, err := sess.Store.Keys(ctx, pattern)
		if err != nil {
			fatal("Failed to list keys", err)
		}
		for _, k := range keys {
			marker := " "
			if k == sess.Adapter.Key() {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, k)
		}
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
