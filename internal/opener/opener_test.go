package opener_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/stash/internal/opener"
)

type call struct {
	name string
	args []string
}

type recorder struct {
	calls []call
	fail  map[string]bool
}

func (r *recorder) run(name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	if r.fail[args[len(args)-1]] {
		return errors.New("boom")
	}
	return nil
}

func TestOpenURLs_ContinuesAfterFailure(t *testing.T) {
	var logs strings.Builder
	rec := &recorder{fail: map[string]bool{"https://bad.example": true}}
	o := opener.NewWithRunner("linux", rec.run, zerolog.New(&logs))

	opened := o.OpenURLs([]string{"https://a.example", "https://bad.example", "https://b.example"})

	if opened != 2 {
		t.Errorf("expected 2 opened, got %d", opened)
	}
	if len(rec.calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(rec.calls))
	}
	if rec.calls[0].name != "xdg-open" {
		t.Errorf("expected xdg-open on linux, got %s", rec.calls[0].name)
	}
	if !strings.Contains(logs.String(), "https://bad.example") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}
}

func TestOpen_PlatformCommands(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", "https://go.dev"}},
		{goos: "linux", want: []string{"xdg-open", "https://go.dev"}},
		{goos: "windows", want: []string{"rundll32", "url.dll,FileProtocolHandler", "https://go.dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recorder{}
			o := opener.NewWithRunner(tt.goos, rec.run, zerolog.Nop())
			o.OpenURLs([]string{"https://go.dev"})

			got := append([]string{rec.calls[0].name}, rec.calls[0].args...)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRevealFile(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", "-R", "/data/stash/bookmarks.json"}},
		{goos: "linux", want: []string{"xdg-open", "/data/stash"}},
		{goos: "windows", want: []string{"explorer", "/select,/data/stash/bookmarks.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recorder{}
			o := opener.NewWithRunner(tt.goos, rec.run, zerolog.Nop())
			if err := o.RevealFile("/data/stash/bookmarks.json"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := append([]string{rec.calls[0].name}, rec.calls[0].args...)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOpen_UnsupportedPlatform(t *testing.T) {
	rec := &recorder{}
	o := opener.NewWithRunner("plan9", rec.run, zerolog.Nop())

	if err := o.RevealDir("/tmp"); err == nil {
		t.Error("expected error on unsupported platform")
	}
	if len(rec.calls) != 0 {
		t.Error("no command should run on unsupported platform")
	}
}
