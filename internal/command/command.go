// Package command defines the user intents a UI hands to the controller and
// the queue that carries them.
package command

import "github.com/nikbrunner/stash/internal/model"

// Command is a queued user intent. The set of implementations is closed.
type Command interface {
	// Kind returns a short name used in logs.
	Kind() string
	isCommand()
}

// AddTopic creates a topic if none with the same name exists.
type AddTopic struct {
	Topic model.Topic
}

// EditTopic renames a topic in place.
type EditTopic struct {
	OldName string
	Topic   model.Topic
}

// RemoveTopic deletes a topic and its links.
type RemoveTopic struct {
	Name string
}

// ReorderTopics moves the topic at From to position To.
type ReorderTopics struct {
	From, To int
}

// AddLink appends a link, creating the topic when missing.
type AddLink struct {
	TopicName string
	Link      model.Link
}

// EditLink replaces the first link matching Old.
type EditLink struct {
	TopicName string
	Old       model.Link
	New       model.Link
}

// RemoveLink removes the first link matching Link.
type RemoveLink struct {
	TopicName string
	Link      model.Link
}

// ReorderLinks moves a link within one topic.
type ReorderLinks struct {
	TopicName string
	From, To  int
}

// Merge imports every topic of Source, replacing same-name topics.
type Merge struct {
	Source *model.Store
}

// ToggleExpanded flips the expanded state of the topic at Index.
// UI-local: does not touch the store.
type ToggleExpanded struct {
	Index int
}

// ToggleAlwaysOnTop flips the window's always-on-top flag.
// UI-local: does not touch the store.
type ToggleAlwaysOnTop struct{}

func (AddTopic) Kind() string          { return "add-topic" }
func (EditTopic) Kind() string         { return "edit-topic" }
func (RemoveTopic) Kind() string       { return "remove-topic" }
func (ReorderTopics) Kind() string     { return "reorder-topics" }
func (AddLink) Kind() string           { return "add-link" }
func (EditLink) Kind() string          { return "edit-link" }
func (RemoveLink) Kind() string        { return "remove-link" }
func (ReorderLinks) Kind() string      { return "reorder-links" }
func (Merge) Kind() string             { return "merge" }
func (ToggleExpanded) Kind() string    { return "toggle-expanded" }
func (ToggleAlwaysOnTop) Kind() string { return "toggle-always-on-top" }

func (AddTopic) isCommand()          {}
func (EditTopic) isCommand()         {}
func (RemoveTopic) isCommand()       {}
func (ReorderTopics) isCommand()     {}
func (AddLink) isCommand()           {}
func (EditLink) isCommand()          {}
func (RemoveLink) isCommand()        {}
func (ReorderLinks) isCommand()      {}
func (Merge) isCommand()             {}
func (ToggleExpanded) isCommand()    {}
func (ToggleAlwaysOnTop) isCommand() {}
