package search

import (
	"github.com/nikbrunner/stash/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	TopicName      string
	Link           model.Link
	MatchedIndexes []int
	Score          int
}

// candidate is one link together with the topic that holds it.
type candidate struct {
	topic string
	link  model.Link
}

// linkTitles implements fuzzy.Source over links from every topic.
type linkTitles []candidate

func (lt linkTitles) String(i int) string {
	return lt[i].link.Title
}

func (lt linkTitles) Len() int {
	return len(lt)
}

// FuzzySearchLinks searches the titles of all links in all topics.
// Returns results sorted by match score (best first); ties keep store order.
func FuzzySearchLinks(store *model.Store, query string) []SearchResult {
	if query == "" {
		return nil
	}

	var links linkTitles
	for _, topic := range store.Topics() {
		for _, link := range store.LinksFor(topic.Name) {
			links = append(links, candidate{topic: topic.Name, link: link})
		}
	}

	// Run fuzzy matching
	matches := fuzzy.FindFrom(query, links)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			TopicName:      links[m.Index].topic,
			Link:           links[m.Index].link,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// AllLinks returns every link in store order as unscored results.
// Pickers use it to show the full list before a query is typed.
func AllLinks(store *model.Store) []SearchResult {
	var results []SearchResult
	for _, topic := range store.Topics() {
		for _, link := range store.LinksFor(topic.Name) {
			results = append(results, SearchResult{TopicName: topic.Name, Link: link})
		}
	}
	return results
}
