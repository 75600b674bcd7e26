// Package main provides the stash CLI.
package main

import (
	"fmt"
	"os"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/stash/internal/app"
	"github.com/nikbrunner/stash/internal/storage"
)

// Global flag values.
var (
	flagConfig   string
	flagDataDir  string
	flagLogLevel string
)

// Set by PersistentPreRunE so all subcommands can use them.
var (
	cfg   *storage.Config
	store storage.Storage
	ctrl  *app.Controller
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stash",
	Short: "Stash keeps bookmarks grouped by topic",
	Long: `Stash is a small bookmark organizer. Links are grouped under topics,
both kept in the order you arrange them, and saved to a JSON file in your
documents folder after every change.

The bookmarks file is written in the ordered layout unless the config sets
"format: legacy". Older versions read only the legacy layout.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/stash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: ~/Documents/stash)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: "+fmt.Sprint(validLogLevels()))

	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup loads config, configures logging and loads the store.
func setup(cmd *cobra.Command, args []string) error {
	c, err := storage.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		dir, err := storage.ExpandPath(flagDataDir)
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	cfg = c

	setupLogging(cfg.LogLevel, cfg.LogFormat)

	s, err := storage.OpenStorage(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	data, err := s.Load()
	if err != nil {
		s.Close()
		return fmt.Errorf("load bookmarks: %w", err)
	}
	store = s

	zlog.Debug().
		Str("path", s.Path()).
		Int("topics", data.Len()).
		Msg("bookmarks loaded")

	ctrl = app.New(app.Params{
		Store:              data,
		Storage:            s,
		Logger:             &zlog.Logger,
		SkipDuplicateLinks: cfg.SkipDuplicateLinks,
	})
	return nil
}

// teardown releases the storage backend.
func teardown(cmd *cobra.Command, args []string) error {
	if store != nil {
		return store.Close()
	}
	return nil
}
