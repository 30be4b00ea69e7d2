package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	jlifecycle "github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch [query]",
	Short: "Show notes and refresh whenever another process changes them",
	Long: `Open the notes read-only and print the list again every time the slot
changes on disk. Requires the fs backend. Stop with Ctrl+C.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sess := openSession(ctx, cmd, jotter.WithReadOnly(true))
		defer sess.Close()

		events, err := sess.Service.Watch(ctx, "")
		if err != nil {
			fatal("Failed to watch notes", err)
		}

		render := func() {
			notes, err := sess.Service.Query(ctx, query)
			if err != nil {
				fatal("Failed to list notes", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, "\033[H\033[2J")
			renderList(out, notes, query, time.Now())
		}
		render()

		src := jlifecycle.NewSource(events, jlifecycle.WithFilter(func(e core.Event) bool {
			return e.Key == sess.Adapter.Key()
		}))
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		for e := range src.Events() {
			slog.Debug("slot changed", "event", e.String())
			if err := sess.Service.Reload(ctx); err != nil {
				// A writer may be mid-way; keep the last good view.
				slog.Warn("reload failed", "error", err)
				continue
			}
			render()
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
