package model

import "fmt"

// Store holds topics in display order, each with its ordered list of links.
// It is not safe for concurrent use; a single owner mutates it.
type Store struct {
	entries []entry
}

type entry struct {
	topic Topic
	links []Link
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: []entry{}}
}

// Len returns the number of topics.
func (s *Store) Len() int {
	return len(s.entries)
}

// TopicIndex returns the position of the named topic, or -1 if absent.
func (s *Store) TopicIndex(name string) int {
	for i := range s.entries {
		if s.entries[i].topic.Name == name {
			return i
		}
	}
	return -1
}

// HasTopic reports whether a topic with the given name exists.
func (s *Store) HasTopic(name string) bool {
	return s.TopicIndex(name) >= 0
}

// AddTopic appends a topic with no links.
// Returns false if a topic with the same name already exists.
func (s *Store) AddTopic(topic Topic) bool {
	if s.HasTopic(topic.Name) {
		return false
	}
	s.entries = append(s.entries, entry{topic: topic, links: []Link{}})
	return true
}

// EditTopic renames the topic oldName to topic, keeping its position and links.
// Returns false if oldName is absent or another topic already uses the new name.
func (s *Store) EditTopic(oldName string, topic Topic) bool {
	idx := s.TopicIndex(oldName)
	if idx < 0 {
		return false
	}
	if other := s.TopicIndex(topic.Name); other >= 0 && other != idx {
		return false
	}
	s.entries[idx].topic = topic
	return true
}

// RemoveTopic deletes a topic together with all of its links.
func (s *Store) RemoveTopic(name string) bool {
	idx := s.TopicIndex(name)
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return true
}

// ReorderTopics moves the topic at from to position to, shifting the topics
// in between by one. Returns false if from equals to.
// Panics if either index is out of range.
func (s *Store) ReorderTopics(from, to int) bool {
	checkIndex("topic", from, len(s.entries))
	checkIndex("topic", to, len(s.entries))
	if from == to {
		return false
	}
	move(s.entries, from, to)
	return true
}

// Topics returns a snapshot of all topics in store order.
func (s *Store) Topics() []Topic {
	topics := make([]Topic, len(s.entries))
	for i := range s.entries {
		topics[i] = s.entries[i].topic
	}
	return topics
}

// AddLink appends a link to the topic, creating the topic if needed.
// Duplicate links are kept; callers that want to skip them check HasLink first.
func (s *Store) AddLink(topic Topic, link Link) {
	idx := s.TopicIndex(topic.Name)
	if idx < 0 {
		s.entries = append(s.entries, entry{topic: topic, links: []Link{}})
		idx = len(s.entries) - 1
	}
	s.entries[idx].links = append(s.entries[idx].links, link)
}

// HasLink reports whether the topic holds a link with the same identity.
func (s *Store) HasLink(topicName string, link Link) bool {
	return s.linkIndex(topicName, link) >= 0
}

// EditLink replaces the first link matching old in place.
// Returns false if the topic or link is absent.
func (s *Store) EditLink(topicName string, old, updated Link) bool {
	i := s.linkIndex(topicName, old)
	if i < 0 {
		return false
	}
	s.entries[s.TopicIndex(topicName)].links[i] = updated
	return true
}

// RemoveLink removes the first link matching link.
// Returns false if the topic or link is absent.
func (s *Store) RemoveLink(topicName string, link Link) bool {
	i := s.linkIndex(topicName, link)
	if i < 0 {
		return false
	}
	e := &s.entries[s.TopicIndex(topicName)]
	e.links = append(e.links[:i], e.links[i+1:]...)
	return true
}

// ReorderLinks moves a link within a topic, with the same semantics as
// ReorderTopics. Returns false if the topic is absent or from equals to.
// Panics if either index is out of range for an existing topic.
func (s *Store) ReorderLinks(topicName string, from, to int) bool {
	idx := s.TopicIndex(topicName)
	if idx < 0 {
		return false
	}
	links := s.entries[idx].links
	checkIndex("link", from, len(links))
	checkIndex("link", to, len(links))
	if from == to {
		return false
	}
	move(links, from, to)
	return true
}

// LinksFor returns a copy of the topic's links in order.
// Returns an empty slice if the topic is absent.
func (s *Store) LinksFor(topicName string) []Link {
	idx := s.TopicIndex(topicName)
	if idx < 0 {
		return []Link{}
	}
	links := make([]Link, len(s.entries[idx].links))
	copy(links, s.entries[idx].links)
	return links
}

// SetLinks replaces the link list of a topic, creating the topic at the end
// if it does not exist yet.
func (s *Store) SetLinks(topic Topic, links []Link) {
	cp := make([]Link, len(links))
	copy(cp, links)

	idx := s.TopicIndex(topic.Name)
	if idx < 0 {
		s.entries = append(s.entries, entry{topic: topic, links: cp})
		return
	}
	s.entries[idx].links = cp
}

// Merge copies every topic of other into s. Topics with a name already in s
// have their links replaced in place; new topics are appended in other's order.
func (s *Store) Merge(other *Store) (added, replaced int) {
	for _, e := range other.entries {
		if s.HasTopic(e.topic.Name) {
			replaced++
		} else {
			added++
		}
		s.SetLinks(e.topic, e.links)
	}
	return added, replaced
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := NewStore()
	for _, e := range s.entries {
		c.SetLinks(e.topic, e.links)
	}
	return c
}

// linkIndex returns the position of the first link matching link, or -1.
func (s *Store) linkIndex(topicName string, link Link) int {
	idx := s.TopicIndex(topicName)
	if idx < 0 {
		return -1
	}
	for i, l := range s.entries[idx].links {
		if l.Same(link) {
			return i
		}
	}
	return -1
}

func checkIndex(kind string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("model: %s index %d out of range [0, %d)", kind, i, n))
	}
}

// move shifts the element at from to position to.
func move[T any](items []T, from, to int) {
	if from == to {
		return
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
}
