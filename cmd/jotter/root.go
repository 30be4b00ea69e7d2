package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var (
	verbose      bool
	configPath   string
	backend      string
	storePath    string
	slotKey      string
	format       string
	versioning   bool
	resetCorrupt bool

	// cfg is the loaded config file; flags override it.
	cfg jotter.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jotter",
	Short: "Quick notes, typed or dictated, kept in a single key-value slot",
	Long: `jotter keeps short text notes. Each change rewrites the whole collection
into one slot of a key-value store: a file (optionally versioned with git),
a SQLite database, a Redis server or a PostgreSQL table.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		path := configPath
		if path == "" {
			if wd, err := os.Getwd(); err == nil {
				path = jotter.FindConfig(wd)
			}
		}
		loaded, err := jotter.LoadConfig(path)
		if err != nil {
			fatal("Failed to load config", err)
		}
		if path != "" {
			slog.Debug("config loaded", "path", path)
		}
		cfg = loaded
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configPath, "config", "", "Config file (default: nearest jotter.yaml, then the user config dir)")
	flags.StringVar(&backend, "backend", "", "Storage backend: fs, sqlite, redis, postgres or memory (default fs)")
	flags.StringVar(&storePath, "store", "", "Store location: directory (fs), database file (sqlite), URL (redis) or DSN (postgres)")
	flags.StringVar(&slotKey, "key", "", "Slot holding the notes (default \"notes\")")
	flags.StringVar(&format, "format", "", "Slot encoding: json or yaml (default json)")
	flags.BoolVar(&versioning, "versioning", false, "Commit every change to git (fs backend)")
	flags.BoolVar(&resetCorrupt, "reset-corrupt", false, "Start empty when the stored notes cannot be read")
}
