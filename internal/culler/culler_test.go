package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/stash/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func target(url string) Target {
	return Target{TopicName: "Dev", Link: model.Link{Title: url, URL: url}}
}

func TestCheckURLs_Statuses(t *testing.T) {
	srv := newServer(t)

	targets := []Target{
		target(srv.URL + "/ok"),
		target(srv.URL + "/missing"),
		target(srv.URL + "/gone"),
		target(srv.URL + "/boom"),
		target(srv.URL + "/redirect"),
	}

	results := CheckURLs(context.Background(), targets, Options{Concurrency: 3, Timeout: 5 * time.Second})

	assert.Equal(t, len(results), len(targets))
	want := []Status{Healthy, Dead, Dead, Unreachable, Healthy}
	for i, r := range results {
		assert.Equal(t, r.Target.Link.URL, targets[i].Link.URL, "results must keep target order")
		assert.Equal(t, r.Status, want[i], "url %s", r.Target.Link.URL)
	}
	assert.Equal(t, results[3].Error, "Internal Server Error")
	assert.Equal(t, results[3].StatusCode, http.StatusInternalServerError)
}

func TestCheckURLs_ExcludedDomainIsNotDead(t *testing.T) {
	srv := newServer(t)

	results := CheckURLs(context.Background(), []Target{target(srv.URL + "/missing")}, Options{
		Concurrency:    1,
		Timeout:        5 * time.Second,
		ExcludeDomains: []string{"127.0.0.1"},
	})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheckURLs_Progress(t *testing.T) {
	srv := newServer(t)
	targets := []Target{target(srv.URL + "/ok"), target(srv.URL + "/ok"), target(srv.URL + "/ok")}

	var calls atomic.Int32
	var last atomic.Int32
	CheckURLs(context.Background(), targets, Options{
		Concurrency: 2,
		Timeout:     5 * time.Second,
		OnProgress: func(completed, total int) {
			calls.Add(1)
			last.Store(int32(completed))
			if total != 3 {
				t.Errorf("expected total 3, got %d", total)
			}
		},
	})

	assert.Equal(t, calls.Load(), int32(3))
	assert.Equal(t, last.Load(), int32(3))
}

func TestCheckURLs_Empty(t *testing.T) {
	assert.Assert(t, CheckURLs(context.Background(), nil, Options{}) == nil)
}

func TestCheckURLs_Unreachable(t *testing.T) {
	results := CheckURLs(context.Background(), []Target{target("ftp://example.invalid/file")}, Options{Timeout: time.Second})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Unsupported URL")
}

func TestCheckURLs_CancelledContext(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := CheckURLs(ctx, []Target{target(srv.URL + "/ok")}, Options{Timeout: time.Second})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Cancelled")
}

func TestTargets(t *testing.T) {
	store := model.NewStore()
	store.AddLink(model.NewTopic("Dev"), model.Link{Title: "a", URL: "https://a.example"})
	store.AddLink(model.NewTopic("Later"), model.Link{Title: "b", URL: "https://b.example"})
	store.AddLink(model.NewTopic("Dev"), model.Link{Title: "c", URL: "https://c.example"})

	assert.Equal(t, len(Targets(store, "")), 3)

	dev := Targets(store, "Dev")
	assert.Equal(t, len(dev), 2)
	assert.Equal(t, dev[1].Link.Title, "c")

	assert.Equal(t, len(Targets(store, "missing")), 0)
}

func TestIsExcludedDomain(t *testing.T) {
	exclude := map[string]bool{"github.com": true}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/me/private", true},
		{"https://api.github.com/repos", true},
		{"https://github.com:443/x", true},
		{"https://notgithub.com/x", false},
		{"https://example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, isExcludedDomain(tt.url, exclude), tt.want, tt.url)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, Healthy.String(), "healthy")
	assert.Equal(t, Dead.String(), "dead")
	assert.Equal(t, Unreachable.String(), "unreachable")
}
