package command

import (
	"sync"

	"github.com/google/uuid"
)

// Envelope pairs a queued command with the ID assigned at push time.
type Envelope struct {
	ID      string
	Command Command
}

// Queue is an unbounded FIFO of commands. Any number of goroutines may push;
// a single consumer pops. Neither side ever blocks waiting for the other.
type Queue struct {
	mu    sync.Mutex
	items []Envelope
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues cmd and returns its ID.
func (q *Queue) Push(cmd Command) string {
	env := Envelope{ID: uuid.New().String(), Command: cmd}

	q.mu.Lock()
	q.items = append(q.items, env)
	q.mu.Unlock()

	return env.ID
}

// TryPop removes and returns the oldest command.
// Returns false immediately if the queue is empty.
func (q *Queue) TryPop() (Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Envelope{}, false
	}

	env := q.items[0]
	q.items[0] = Envelope{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return env, true
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
