package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/stash/internal/app"
	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/storage"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		n       int
		want    int
		wantErr string
	}{
		{name: "first", arg: "1", n: 3, want: 0},
		{name: "last", arg: "3", n: 3, want: 2},
		{name: "zero", arg: "0", n: 3, wantErr: "invalid topic position 0: want 1-3"},
		{name: "past end", arg: "4", n: 3, wantErr: "invalid topic position 4: want 1-3"},
		{name: "empty list", arg: "1", n: 0, wantErr: "invalid topic position 1: there are none"},
		{name: "not a number", arg: "x", n: 3, wantErr: `invalid topic position "x": not a number`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePosition(tt.arg, tt.n, "topic")
			if tt.wantErr != "" {
				assert.Error(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestLinkAt(t *testing.T) {
	s := model.NewStore()
	s.AddLink(model.NewTopic("Dev"), model.Link{Title: "a", URL: "https://a.example"})
	s.AddLink(model.NewTopic("Dev"), model.Link{Title: "b", URL: "https://b.example"})

	link, idx, err := linkAt(s, "Dev", "2")
	assert.NilError(t, err)
	assert.Equal(t, idx, 1)
	assert.Equal(t, link.Title, "b")

	_, _, err = linkAt(s, "Missing", "1")
	assert.Error(t, err, `topic "Missing" not found`)

	_, _, err = linkAt(s, "Dev", "3")
	assert.ErrorContains(t, err, "want 1-2")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, parseLogLevel("DEBUG"), zerolog.DebugLevel)
	assert.Equal(t, parseLogLevel("warning"), zerolog.WarnLevel)
	assert.Equal(t, parseLogLevel("bogus"), zerolog.InfoLevel)
	assert.Equal(t, len(validLogLevels()), 7)
}

func TestApplyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path, storage.FormatOrdered)
	ctrl = app.New(app.Params{Storage: s, SkipDuplicateLinks: true})
	t.Cleanup(func() { ctrl = nil })

	link := model.Link{Title: "Go", URL: "https://go.dev"}
	changed, err := apply(
		command.AddLink{TopicName: "Dev", Link: link},
		command.AddLink{TopicName: "Dev", Link: link},
	)
	assert.NilError(t, err)
	assert.Equal(t, changed, 1)

	loaded, err := storage.LoadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, len(loaded.LinksFor("Dev")), 1)
}

func TestReadImport(t *testing.T) {
	dir := t.TempDir()

	src := model.NewStore()
	src.AddLink(model.NewTopic("Dev"), model.Link{Title: "Go", URL: "https://go.dev"})
	jsonPath := filepath.Join(dir, "in.json")
	assert.NilError(t, storage.Export(src, jsonPath, storage.FormatLegacy))

	got, err := readImport(jsonPath)
	assert.NilError(t, err)
	assert.Equal(t, len(got.LinksFor("Dev")), 1)

	htmlPath := filepath.Join(dir, "in.HTML")
	assert.NilError(t, storage.WriteFile(htmlPath, []byte(`<DL><p><DT><A HREF="https://go.dev">Go</A></DL>`)))

	got, err = readImport(htmlPath)
	assert.NilError(t, err)
	assert.Equal(t, len(got.LinksFor("Imported")), 1)
}

func TestPreviewMerge(t *testing.T) {
	current := model.NewStore()
	current.AddLink(model.NewTopic("Dev"), model.Link{Title: "Go", URL: "https://go.dev"})

	source := model.NewStore()
	source.AddLink(model.NewTopic("Dev"), model.Link{Title: "Rust", URL: "https://rust-lang.org"})
	source.AddTopic(model.NewTopic("News"))

	added, replaced := previewMerge(current, source)
	assert.Equal(t, added, 1)
	assert.Equal(t, replaced, 1)

	assert.Equal(t, current.Len(), 1)
	links := current.LinksFor("Dev")
	assert.Equal(t, len(links), 1)
	assert.Equal(t, links[0].URL, "https://go.dev")
}

func TestExportHelp_MentionsLegacyCompatibility(t *testing.T) {
	assert.Assert(t, strings.Contains(exportCmd.Long, "older versions only read legacy"))
	assert.Assert(t, strings.Contains(exportCmd.Long, "format: legacy"))
	assert.Assert(t, strings.Contains(rootCmd.Long, "format: legacy"))
}
