package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var (
	editTitle   string
	editContent string
	editMessage string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace the title and/or content of a note",
	Long: `Replace the title and/or content of a note. Flags not given keep
their current value; id and creation date never change.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		titleSet := cmd.Flags().Changed("title")
		contentSet := cmd.Flags().Changed("content")
		if !titleSet && !contentSet {
			fatal("Nothing to edit", errors.New("pass --title and/or --content"))
		}

		ctx := context.Background()
		sess := openSession(ctx, cmd)
		defer sess.Close()

		id, err := resolveID(ctx, sess.Service, args[0])
		if err != nil {
			fatal("Failed to find note", err)
		}
		current, err := sess.Service.Get(ctx, id)
		if err != nil {
			fatal("Failed to read note", err)
		}

		title, content := current.Title, current.Content
		if titleSet {
			title = editTitle
		}
		if contentSet {
			content = editContent
		}

		if editMessage != "" {
			ctx = jotter.WithChangeReason(ctx, jotter.FormatChangeReason(jotter.CommitTypeDocs, sess.Adapter.Key(), editMessage, ""))
		}

		if _, err := sess.Service.Update(ctx, id, title, content); err != nil {
			fatal("Failed to update note", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note %s updated.\n", shortID(id))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title (empty string removes it)")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVarP(&editMessage, "message", "m", "", "Change reason recorded by versioned stores")
}
