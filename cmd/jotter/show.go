package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		sess := openSession(ctx, cmd)
		defer sess.Close()

		id, err := resolveID(ctx, sess.Service, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}
		note, err := sess.Service.Get(ctx, id)
		if err != nil {
			fatal("Failed to read note", err)
		}

		if showJSON {
			if err := writeJSON(cmd.OutOrStdout(), toView(note)); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}
		renderNote(cmd.OutOrStdout(), note, time.Now())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
