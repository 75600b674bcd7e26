package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/opener"
	"github.com/nikbrunner/stash/internal/picker"
	"github.com/nikbrunner/stash/internal/search"
)

var openCmd = &cobra.Command{
	Use:   "open <topic> [position...]",
	Short: "Open links in the default browser",
	Long: `Open the links at the given positions of a topic, or every link of the
topic when no position is given. A link that fails to open is reported and
the rest are still opened.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := ctrl.Store()
		topicName := args[0]
		if err := requireTopic(s, topicName); err != nil {
			return err
		}

		var urls []string
		if len(args) == 1 {
			for _, link := range s.LinksFor(topicName) {
				urls = append(urls, link.URL)
			}
		} else {
			for _, arg := range args[1:] {
				link, _, err := linkAt(s, topicName, arg)
				if err != nil {
					return err
				}
				urls = append(urls, link.URL)
			}
		}

		if len(urls) == 0 {
			fmt.Printf("No links in %s\n", topicName)
			return nil
		}

		opened := opener.New(zlog.Logger).OpenURLs(urls)
		fmt.Printf("Opened %d of %d links\n", opened, len(urls))
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy search link titles and open the match",
	Long: `Find searches link titles across all topics. A single match is opened
directly; several matches show a picker where enter opens the link and
ctrl+y copies its url.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		s := ctrl.Store()

		results := search.FuzzySearchLinks(s, query)
		if len(results) == 0 {
			fmt.Printf("No links found for '%s'\n", query)
			return nil
		}

		var selected *model.Link
		if len(results) == 1 {
			// Single result - select it directly
			selected = &results[0].Link
			fmt.Printf("Opening: %s\n", selected.Title)
		} else {
			// Multiple results - show picker
			program := tea.NewProgram(picker.New(s, query))
			finalModel, err := program.Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}

			finalPicker := finalModel.(picker.Picker)
			if finalPicker.Yanked() {
				fmt.Println("Copied url to clipboard")
				return nil
			}
			if finalPicker.Cancelled() {
				return nil
			}
			selected = finalPicker.SelectedLink()
		}

		if selected == nil {
			return nil
		}
		opener.New(zlog.Logger).OpenURLs([]string{selected.URL})
		return nil
	},
}

var revealCmd = &cobra.Command{
	Use:       "reveal [file]",
	Short:     "Show the data directory, or the bookmarks file, in the file browser",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"file"},
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opener.New(zlog.Logger)
		if len(args) == 1 {
			if args[0] != "file" {
				return fmt.Errorf("unknown target %q: want \"file\"", args[0])
			}
			return o.RevealFile(store.Path())
		}
		return o.RevealDir(cfg.DataDir)
	},
}
