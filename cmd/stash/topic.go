package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/model"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage topics",
	Long: `Add, rename, remove, reorder and list topics.

Positions are 1-based, as shown by "stash topic ls".

Examples:
  stash topic add Reading
  stash topic rename Reading "Reading List"
  stash topic move 3 1
  stash topic rm Later`,
}

var topicAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a topic at the end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ctrl.Store().HasTopic(args[0]) {
			return fmt.Errorf("topic %q already exists", args[0])
		}
		if _, err := apply(command.AddTopic{Topic: model.NewTopic(args[0])}); err != nil {
			return err
		}
		fmt.Printf("Added topic: %s\n", args[0])
		return nil
	},
}

var topicRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a topic, keeping its position and links",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName, newName := args[0], args[1]
		if err := requireTopic(ctrl.Store(), oldName); err != nil {
			return err
		}
		if oldName != newName && ctrl.Store().HasTopic(newName) {
			return fmt.Errorf("topic %q already exists", newName)
		}
		if _, err := apply(command.EditTopic{OldName: oldName, Topic: model.NewTopic(newName)}); err != nil {
			return err
		}
		fmt.Printf("Renamed topic: %s -> %s\n", oldName, newName)
		return nil
	},
}

var topicRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a topic and all of its links",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTopic(ctrl.Store(), args[0]); err != nil {
			return err
		}
		n := len(ctrl.Store().LinksFor(args[0]))
		if _, err := apply(command.RemoveTopic{Name: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Removed topic: %s (%d links)\n", args[0], n)
		return nil
	},
}

var topicMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a topic to another position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := ctrl.Store().Len()
		from, err := parsePosition(args[0], n, "topic")
		if err != nil {
			return err
		}
		to, err := parsePosition(args[1], n, "topic")
		if err != nil {
			return err
		}
		if _, err := apply(command.ReorderTopics{From: from, To: to}); err != nil {
			return err
		}
		printTopics(ctrl.Store())
		return nil
	},
}

var topicLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List topics in order",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printTopics(ctrl.Store())
	},
}

func init() {
	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicRenameCmd)
	topicCmd.AddCommand(topicRmCmd)
	topicCmd.AddCommand(topicMoveCmd)
	topicCmd.AddCommand(topicLsCmd)
}
