// Package opener hands URLs and paths to the operating system.
package opener

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// Runner starts an external command without waiting for it to finish.
type Runner func(name string, args ...string) error

// startCommand is the default Runner.
func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener opens links in the default browser and paths in the file browser.
type Opener struct {
	goos string
	run  Runner
	log  zerolog.Logger
}

// New creates an Opener for the current platform.
func New(logger zerolog.Logger) *Opener {
	return &Opener{goos: runtime.GOOS, run: startCommand, log: logger}
}

// NewWithRunner creates an Opener for goos that runs commands through run.
func NewWithRunner(goos string, run Runner, logger zerolog.Logger) *Opener {
	return &Opener{goos: goos, run: run, log: logger}
}

// OpenURLs opens each URL in the default browser. Failures are logged and
// the remaining URLs are still opened. Returns the number opened.
func (o *Opener) OpenURLs(urls []string) int {
	opened := 0
	for _, url := range urls {
		if err := o.open(url); err != nil {
			o.log.Warn().Err(err).Str("url", url).Msg("failed to open link")
			continue
		}
		opened++
	}
	return opened
}

// RevealDir opens the file browser at dir.
func (o *Opener) RevealDir(dir string) error {
	return o.open(dir)
}

// RevealFile opens the file browser with path selected where the platform
// supports it, otherwise at its parent directory.
func (o *Opener) RevealFile(path string) error {
	switch o.goos {
	case "darwin":
		return o.run("open", "-R", path)
	case "windows":
		return o.run("explorer", "/select,"+path)
	default:
		return o.open(filepath.Dir(path))
	}
}

func (o *Opener) open(target string) error {
	switch o.goos {
	case "darwin":
		return o.run("open", target)
	case "linux", "freebsd", "openbsd", "netbsd":
		return o.run("xdg-open", target)
	case "windows":
		return o.run("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("opening %q: unsupported platform %s", target, o.goos)
	}
}
