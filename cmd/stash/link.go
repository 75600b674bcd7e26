package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/model"
)

var (
	linkTitle   string
	linkURL     string
	linkPreview string
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage links within a topic",
	Long: `Add, edit, remove, reorder, list and copy links.

Positions are 1-based, as shown by "stash link ls <topic>".

Examples:
  stash link add Reading https://go.dev/blog --title "Go Blog"
  stash link edit Reading 1 --title "The Go Blog"
  stash link move Reading 2 1
  stash link yank Reading 1`,
}

var linkAddCmd = &cobra.Command{
	Use:   "add <topic> <url>",
	Short: "Append a link to a topic, creating the topic if needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicName, url := args[0], args[1]
		title := linkTitle
		if title == "" {
			title = url
		}

		link := model.NewLink(model.NewLinkParams{Title: title, URL: url, Preview: linkPreview})
		changed, err := apply(command.AddLink{TopicName: topicName, Link: link})
		if err != nil {
			return err
		}
		if changed == 0 {
			fmt.Printf("Already in %s: %s\n", topicName, title)
			return nil
		}
		fmt.Printf("Added to %s: %s\n", topicName, title)
		return nil
	},
}

var linkEditCmd = &cobra.Command{
	Use:   "edit <topic> <position>",
	Short: "Change a link's title, url or preview",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, _, err := linkAt(ctrl.Store(), args[0], args[1])
		if err != nil {
			return err
		}

		updated := old
		if cmd.Flags().Changed("title") {
			updated.Title = linkTitle
		}
		if cmd.Flags().Changed("url") {
			updated.URL = linkURL
		}
		if cmd.Flags().Changed("preview") {
			updated = model.NewLink(model.NewLinkParams{Title: updated.Title, URL: updated.URL, Preview: linkPreview})
		}

		if _, err := apply(command.EditLink{TopicName: args[0], Old: old, New: updated}); err != nil {
			return err
		}
		fmt.Printf("Updated link: %s\n", updated.Title)
		return nil
	},
}

var linkRmCmd = &cobra.Command{
	Use:     "rm <topic> <position>",
	Aliases: []string{"remove"},
	Short:   "Remove a link from a topic",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, _, err := linkAt(ctrl.Store(), args[0], args[1])
		if err != nil {
			return err
		}
		if _, err := apply(command.RemoveLink{TopicName: args[0], Link: link}); err != nil {
			return err
		}
		fmt.Printf("Removed link: %s\n", link.Title)
		return nil
	},
}

var linkMoveCmd = &cobra.Command{
	Use:   "move <topic> <from> <to>",
	Short: "Move a link to another position within its topic",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, from, err := linkAt(ctrl.Store(), args[0], args[1])
		if err != nil {
			return err
		}
		_, to, err := linkAt(ctrl.Store(), args[0], args[2])
		if err != nil {
			return err
		}
		if _, err := apply(command.ReorderLinks{TopicName: args[0], From: from, To: to}); err != nil {
			return err
		}
		printLinks(ctrl.Store(), args[0])
		return nil
	},
}

var linkLsCmd = &cobra.Command{
	Use:     "ls [topic]",
	Aliases: []string{"list"},
	Short:   "List the links of a topic, or of every topic",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := ctrl.Store()
		if len(args) == 1 {
			if err := requireTopic(s, args[0]); err != nil {
				return err
			}
			printLinks(s, args[0])
			return nil
		}
		for i, topic := range s.Topics() {
			if i > 0 {
				fmt.Println()
			}
			printLinks(s, topic.Name)
		}
		return nil
	},
}

var linkYankCmd = &cobra.Command{
	Use:   "yank <topic> <position>",
	Short: "Copy a link's url to the clipboard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, _, err := linkAt(ctrl.Store(), args[0], args[1])
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(link.URL); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Printf("Copied: %s\n", link.URL)
		return nil
	},
}

func init() {
	linkAddCmd.Flags().StringVar(&linkTitle, "title", "", "link title (default: the url)")
	linkAddCmd.Flags().StringVar(&linkPreview, "preview", "", "short preview text")

	linkEditCmd.Flags().StringVar(&linkTitle, "title", "", "new title")
	linkEditCmd.Flags().StringVar(&linkURL, "url", "", "new url")
	linkEditCmd.Flags().StringVar(&linkPreview, "preview", "", "new preview text (empty clears it)")

	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkEditCmd)
	linkCmd.AddCommand(linkRmCmd)
	linkCmd.AddCommand(linkMoveCmd)
	linkCmd.AddCommand(linkLsCmd)
	linkCmd.AddCommand(linkYankCmd)
}
