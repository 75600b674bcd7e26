package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/nikbrunner/stash/internal/model"
)

// Format selects the on-disk encoding of a bookmarks document.
type Format string

const (
	// FormatOrdered is an array of {name, links} records in display order.
	FormatOrdered Format = "ordered"
	// FormatLegacy is an object keyed by "{ordinal}_{topic name}".
	FormatLegacy Format = "legacy"
)

var (
	// ErrMalformed is returned when a document cannot be decoded.
	ErrMalformed = errors.New("malformed bookmarks document")
	// ErrUnknownFormat is returned for an unsupported format name.
	ErrUnknownFormat = errors.New("unknown format")
)

// ParseFormat converts a config or flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatOrdered, "":
		return FormatOrdered, nil
	case FormatLegacy:
		return FormatLegacy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// topicRecord is one element of the ordered encoding.
type topicRecord struct {
	Name  string       `json:"name"`
	Links []model.Link `json:"links"`
}

// Encode serializes the store using the given format.
func Encode(store *model.Store, format Format) ([]byte, error) {
	switch format {
	case FormatOrdered, "":
		return encodeOrdered(store)
	case FormatLegacy:
		return encodeLegacy(store)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func encodeOrdered(store *model.Store) ([]byte, error) {
	topics := store.Topics()
	records := make([]topicRecord, len(topics))
	for i, t := range topics {
		records[i] = topicRecord{Name: t.Name, Links: store.LinksFor(t.Name)}
	}
	return json.MarshalIndent(records, "", "  ")
}

func encodeLegacy(store *model.Store) ([]byte, error) {
	doc := orderedmap.New[string, []model.Link]()
	for i, t := range store.Topics() {
		doc.Set(LegacyKey(i, t.Name), store.LinksFor(t.Name))
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a document in either encoding. The encoding is detected from
// the first non-blank byte. Blank input decodes to an empty store.
func Decode(data []byte) (*model.Store, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.NewStore(), nil
	}

	switch trimmed[0] {
	case '[':
		return decodeOrdered(trimmed)
	case '{':
		return decodeLegacy(trimmed)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at start of document", ErrMalformed, trimmed[0])
	}
}

func decodeOrdered(data []byte) (*model.Store, error) {
	var records []topicRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	store := model.NewStore()
	for _, r := range records {
		store.SetLinks(model.NewTopic(r.Name), r.Links)
	}
	return store, nil
}

type legacyEntry struct {
	ordinal int
	name    string
	links   []model.Link
}

func decodeLegacy(data []byte) (*model.Store, error) {
	doc := orderedmap.New[string, []model.Link]()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	entries := make([]legacyEntry, 0, doc.Len())
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		ordinal, name, err := ParseLegacyKey(pair.Key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, legacyEntry{ordinal: ordinal, name: name, links: pair.Value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ordinal < entries[j].ordinal
	})

	store := model.NewStore()
	for _, e := range entries {
		store.SetLinks(model.NewTopic(e.name), e.links)
	}
	return store, nil
}

// LegacyKey builds the legacy object key for a topic at the given position.
func LegacyKey(ordinal int, name string) string {
	return strconv.Itoa(ordinal) + "_" + name
}

// ParseLegacyKey splits a legacy key at its first underscore into the
// ordinal and the topic name. Underscores inside the name are kept.
func ParseLegacyKey(key string) (int, string, error) {
	prefix, name, found := strings.Cut(key, "_")
	if !found {
		return 0, "", fmt.Errorf("%w: key %q has no ordinal prefix", ErrMalformed, key)
	}

	ordinal, err := strconv.Atoi(prefix)
	if err != nil || ordinal < 0 {
		return 0, "", fmt.Errorf("%w: key %q has invalid ordinal %q", ErrMalformed, key, prefix)
	}
	return ordinal, name, nil
}
