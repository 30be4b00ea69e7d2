package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/adapters/fs"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the change history of the notes slot (versioned fs stores)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess := openSession(ctx, cmd)
		defer sess.Close()

		store, ok := sess.Store.(*fs.Store)
		if !ok {
			fatal("History unavailable", fmt.Errorf("backend %s keeps no history", sess.Adapter.ComponentType()))
		}

		revs, err := store.History(ctx, sess.Adapter.Key(), historyLimit)
		if err != nil {
			fatal("Failed to read history", err)
		}

		now := time.Now()
		for _, r := range revs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				idStyle.Sprint(r.Hash),
				dateStyle.Sprintf("%-16s", relativeDate(r.Date, now)),
				r.Subject,
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of revisions")
}
