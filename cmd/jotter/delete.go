package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/core"
)

var deleteMessage string

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		sess := openSession(ctx, cmd)
		defer sess.Close()

		id, err := resolveID(ctx, sess.Service, args[0])
		if errors.Is(err, core.ErrNotFound) {
			// Deleting what is not there changes nothing.
			fmt.Fprintf(os.Stderr, "No note matches %q.\n", args[0])
			return
		}
		if err != nil {
			fatal("Failed to find note", err)
		}

		if deleteMessage != "" {
			ctx = jotter.WithChangeReason(ctx, jotter.FormatChangeReason(jotter.CommitTypeDocs, sess.Adapter.Key(), deleteMessage, ""))
		}

		if err := sess.Service.Delete(ctx, id); err != nil {
			fatal("Failed to delete note", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note %s deleted.\n", shortID(id))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVarP(&deleteMessage, "message", "m", "", "Change reason recorded by versioned stores")
}
