package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls", "search"},
	Short:   "List notes, newest first, optionally filtered by a search term",
	Long: `List notes newest first. With a query, only notes whose title or
content contains it (ignoring case) are shown.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		query := strings.Join(args, " ")

		sess := openSession(ctx, cmd)
		defer sess.Close()

		notes, err := sess.Service.Query(ctx, query)
		if err != nil {
			fatal("Failed to list notes", err)
		}

		if listJSON {
			views := make([]noteView, len(notes))
			for i, n := range notes {
				views[i] = toView(n)
			}
			if err := writeJSON(cmd.OutOrStdout(), views); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		renderList(cmd.OutOrStdout(), notes, query, time.Now())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
