package search

import (
	"testing"

	"github.com/nikbrunner/stash/internal/model"
)

func newStore(topic string, titles ...string) *model.Store {
	store := model.NewStore()
	for _, title := range titles {
		store.AddLink(model.NewTopic(topic), model.Link{Title: title, URL: "https://example.com/" + title})
	}
	return store
}

func TestFuzzySearchLinks_EmptyQuery(t *testing.T) {
	store := newStore("Dev", "GitHub")

	results := FuzzySearchLinks(store, "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchLinks_ExactMatch(t *testing.T) {
	store := newStore("Dev", "GitHub", "GitLab")

	results := FuzzySearchLinks(store, "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Link.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Link.Title)
	}
	if results[0].TopicName != "Dev" {
		t.Errorf("expected topic Dev, got %s", results[0].TopicName)
	}
}

func TestFuzzySearchLinks_FuzzyMatch(t *testing.T) {
	store := newStore("Web", "TanStack Router", "React Router")

	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchLinks(store, "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Link.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Link.Title)
	}
}

func TestFuzzySearchLinks_AcrossTopics(t *testing.T) {
	store := newStore("Dev", "GitHub")
	store.AddLink(model.NewTopic("Later"), model.Link{Title: "Gitea", URL: "https://gitea.io"})
	store.AddLink(model.NewTopic("Later"), model.Link{Title: "Rust Book", URL: "https://doc.rust-lang.org/book"})

	results := FuzzySearchLinks(store, "git")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	topics := map[string]string{}
	for _, r := range results {
		topics[r.Link.Title] = r.TopicName
	}
	if topics["GitHub"] != "Dev" || topics["Gitea"] != "Later" {
		t.Errorf("expected results to carry their topic, got %v", topics)
	}
}

func TestFuzzySearchLinks_ExactMatchRanksFirst(t *testing.T) {
	store := newStore("Web", "React Router Documentation", "Router")

	results := FuzzySearchLinks(store, "router")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	// "Router" should rank higher (exact match) than "React Router Documentation"
	if results[0].Link.Title != "Router" {
		t.Errorf("expected 'Router' as first result (exact match), got %s", results[0].Link.Title)
	}
}

func TestAllLinks_StoreOrder(t *testing.T) {
	store := newStore("B", "b1", "b2")
	store.AddLink(model.NewTopic("A"), model.Link{Title: "a1", URL: "https://a.example"})

	results := AllLinks(store)

	want := []string{"b1", "b2", "a1"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, title := range want {
		if results[i].Link.Title != title {
			t.Errorf("result %d: expected %s, got %s", i, title, results[i].Link.Title)
		}
	}
}
