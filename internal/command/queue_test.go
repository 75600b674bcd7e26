package command_test

import (
	"sync"
	"testing"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/model"
)

func TestQueue_FIFO(t *testing.T) {
	q := command.NewQueue()

	q.Push(command.AddTopic{Topic: model.NewTopic("A")})
	q.Push(command.RemoveTopic{Name: "A"})

	first, ok := q.TryPop()
	if !ok {
		t.Fatal("expected a command")
	}
	if _, isAdd := first.Command.(command.AddTopic); !isAdd {
		t.Errorf("expected AddTopic first, got %T", first.Command)
	}

	second, ok := q.TryPop()
	if !ok {
		t.Fatal("expected a second command")
	}
	if second.Command.Kind() != "remove-topic" {
		t.Errorf("expected remove-topic, got %s", second.Command.Kind())
	}
}

func TestQueue_TryPopEmpty(t *testing.T) {
	q := command.NewQueue()

	if _, ok := q.TryPop(); ok {
		t.Error("expected no command from empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_PushAssignsUniqueIDs(t *testing.T) {
	q := command.NewQueue()

	a := q.Push(command.ToggleAlwaysOnTop{})
	b := q.Push(command.ToggleAlwaysOnTop{})

	if a == "" || a == b {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a, b)
	}

	env, _ := q.TryPop()
	if env.ID != a {
		t.Errorf("expected envelope ID %q, got %q", a, env.ID)
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := command.NewQueue()
	const producers, perProducer = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(command.ToggleExpanded{Index: i})
			}
		}()
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Fatalf("expected %d commands, got %d", producers*perProducer, q.Len())
	}

	count := 0
	for {
		if _, ok := q.TryPop(); !ok {
			break
		}
		count++
	}
	if count != producers*perProducer {
		t.Errorf("expected to pop %d commands, got %d", producers*perProducer, count)
	}
}
