// Package app owns the bookmark store and applies queued commands to it,
// one per update tick.
package app

import (
	"github.com/rs/zerolog"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/storage"
)

// Controller is the single owner of the store. UIs push commands onto its
// queue from any goroutine; Tick must only be called from the owner.
type Controller struct {
	store   *model.Store
	storage storage.Storage
	queue   *command.Queue
	ui      *UIState
	log     zerolog.Logger

	skipDuplicateLinks bool
	lastErr            error
}

// Params holds parameters for creating a new Controller.
type Params struct {
	Store              *model.Store
	Storage            storage.Storage
	Logger             *zerolog.Logger // optional, logging disabled if nil
	SkipDuplicateLinks bool
}

// Result describes what a Tick did.
type Result struct {
	ID      string // envelope ID, empty when the queue was empty
	Kind    string
	Changed bool // the store was mutated and a save was attempted
}

// Drained reports whether a command was taken off the queue. The UI should
// re-render when it was.
func (r Result) Drained() bool {
	return r.ID != ""
}

// New creates a Controller. A nil Store starts empty.
func New(params Params) *Controller {
	store := params.Store
	if store == nil {
		store = model.NewStore()
	}

	logger := zerolog.Nop()
	if params.Logger != nil {
		logger = *params.Logger
	}

	return &Controller{
		store:              store,
		storage:            params.Storage,
		queue:              command.NewQueue(),
		ui:                 NewUIState(),
		log:                logger,
		skipDuplicateLinks: params.SkipDuplicateLinks,
	}
}

// Queue returns the command queue producers push onto.
func (c *Controller) Queue() *command.Queue {
	return c.queue
}

// Push is shorthand for Queue().Push.
func (c *Controller) Push(cmd command.Command) string {
	return c.queue.Push(cmd)
}

// Store returns the store for reading. Callers must not mutate it.
func (c *Controller) Store() *model.Store {
	return c.store
}

// UI returns the UI-local state.
func (c *Controller) UI() *UIState {
	return c.ui
}

// LastError returns the most recent save failure, or nil once a later save
// has succeeded.
func (c *Controller) LastError() error {
	return c.lastErr
}

// Tick applies at most one pending command. When the store changes it is
// saved in full before Tick returns; a save failure is returned and kept in
// LastError, and the in-memory change is kept.
func (c *Controller) Tick() (Result, error) {
	env, ok := c.queue.TryPop()
	if !ok {
		return Result{}, nil
	}

	res := Result{ID: env.ID, Kind: env.Command.Kind()}
	res.Changed = c.apply(env.Command)

	c.log.Debug().
		Str("id", env.ID).
		Str("kind", res.Kind).
		Bool("changed", res.Changed).
		Msg("applied command")

	if !res.Changed {
		return res, nil
	}
	return res, c.persist()
}

// Flush ticks until the queue is empty and returns the number of commands
// that changed the store. It stops at the first save failure.
func (c *Controller) Flush() (int, error) {
	changed := 0
	for c.queue.Len() > 0 {
		res, err := c.Tick()
		if res.Changed {
			changed++
		}
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (c *Controller) persist() error {
	if c.storage == nil {
		return nil
	}

	if err := c.storage.Save(c.store); err != nil {
		c.lastErr = err
		c.log.Error().Err(err).Str("path", c.storage.Path()).Msg("failed to save bookmarks")
		return err
	}
	c.lastErr = nil
	return nil
}

// apply mutates the store or UI state and reports whether the store changed.
func (c *Controller) apply(cmd command.Command) bool {
	switch cmd := cmd.(type) {
	case command.AddTopic:
		return c.store.AddTopic(cmd.Topic)

	case command.EditTopic:
		return c.store.EditTopic(cmd.OldName, cmd.Topic)

	case command.RemoveTopic:
		if !c.store.RemoveTopic(cmd.Name) {
			return false
		}
		c.ui.ResetExpanded()
		return true

	case command.ReorderTopics:
		if !c.store.ReorderTopics(cmd.From, cmd.To) {
			return false
		}
		c.ui.ResetExpanded()
		return true

	case command.AddLink:
		if c.skipDuplicateLinks && c.store.HasLink(cmd.TopicName, cmd.Link) {
			c.log.Debug().Str("topic", cmd.TopicName).Str("url", cmd.Link.URL).Msg("skipping duplicate link")
			return false
		}
		c.store.AddLink(model.NewTopic(cmd.TopicName), cmd.Link)
		return true

	case command.EditLink:
		return c.store.EditLink(cmd.TopicName, cmd.Old, cmd.New)

	case command.RemoveLink:
		return c.store.RemoveLink(cmd.TopicName, cmd.Link)

	case command.ReorderLinks:
		return c.store.ReorderLinks(cmd.TopicName, cmd.From, cmd.To)

	case command.Merge:
		if cmd.Source == nil || cmd.Source.Len() == 0 {
			return false
		}
		added, replaced := c.store.Merge(cmd.Source)
		c.log.Info().Int("added", added).Int("replaced", replaced).Msg("merged topics")
		return true

	case command.ToggleExpanded:
		c.ui.ToggleExpanded(cmd.Index)
		return false

	case command.ToggleAlwaysOnTop:
		c.ui.ToggleAlwaysOnTop()
		return false
	}

	return false
}
