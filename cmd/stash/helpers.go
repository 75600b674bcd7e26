// Shared helpers for stash CLI commands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/model"
)

// apply queues cmds and drains them through the controller, which saves
// after every change. Returns the number of commands that changed the store.
func apply(cmds ...command.Command) (int, error) {
	for _, c := range cmds {
		ctrl.Push(c)
	}
	return ctrl.Flush()
}

// parsePosition converts a 1-based position argument to an index in [0, n).
func parsePosition(arg string, n int, what string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s position %q: not a number", what, arg)
	}
	if pos < 1 || pos > n {
		if n == 0 {
			return 0, fmt.Errorf("invalid %s position %d: there are none", what, pos)
		}
		return 0, fmt.Errorf("invalid %s position %d: want 1-%d", what, pos, n)
	}
	return pos - 1, nil
}

// requireTopic returns an error if the named topic does not exist.
func requireTopic(s *model.Store, name string) error {
	if !s.HasTopic(name) {
		return fmt.Errorf("topic %q not found", name)
	}
	return nil
}

// linkAt resolves a 1-based link position within a topic.
func linkAt(s *model.Store, topicName, arg string) (model.Link, int, error) {
	if err := requireTopic(s, topicName); err != nil {
		return model.Link{}, 0, err
	}
	links := s.LinksFor(topicName)
	idx, err := parsePosition(arg, len(links), "link")
	if err != nil {
		return model.Link{}, 0, err
	}
	return links[idx], idx, nil
}

func printTopics(s *model.Store) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	if s.Len() == 0 {
		_, _ = faint.Fprintln(color.Output, "No topics yet. Add one with: stash topic add <name>")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Topic"), bold.Sprint("Links"))
	for i, topic := range s.Topics() {
		tbl.AddRow(i+1, topic.Name, faint.Sprint(len(s.LinksFor(topic.Name))))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printLinks(s *model.Store, topicName string) {
	title := color.New(color.Bold, color.Underline)
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	links := s.LinksFor(topicName)
	_, _ = title.Fprintln(color.Output, topicName)
	if len(links) == 0 {
		_, _ = faint.Fprintln(color.Output, "  (no links)")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Title"), bold.Sprint("URL"))
	for i, link := range links {
		tbl.AddRow(i+1, link.Title, faint.Sprint(link.URL))
		if link.Preview != nil && *link.Preview != "" {
			tbl.AddRow("", faint.Sprint(*link.Preview), "")
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
