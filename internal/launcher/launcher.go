// Package launcher opens links (movie pages, posters, sign-in pages) in
// the user's browser.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrNoOpener is returned when no way to open a link was found
var ErrNoOpener = errors.New("no browser found")

// opener is one way of opening a link on a platform
type opener struct {
	command string
	args    []string // placed before the URL
}

// openers lists, per platform, the commands tried in order
var openers = map[string][]opener{
	"darwin": {
		{command: "open"},
	},
	"linux": {
		{command: "xdg-open"},
		{command: "sensible-browser"},
		{command: "x-www-browser"},
		{command: "firefox"},
		{command: "chromium"},
	},
	"windows": {
		{command: "cmd", args: []string{"/c", "start", ""}},
		{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
	},
}

// Launcher opens URLs with a configured command or the system default
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the command
	goos    string
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a Launcher. An empty command selects the system default.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// startDetached starts the command without waiting for it
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens rawURL. Only http and https links are accepted.
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not a web link: %q", rawURL)
	}

	// Tier 1: user configured a specific command
	if l.command != "" {
		args := append(append([]string{}, l.args...), rawURL)
		l.logger.Info("opening with configured browser", "command", l.command, "url", rawURL)
		return l.start(l.command, args...)
	}

	// Tier 2: platform openers in order
	candidates, ok := openers[l.goos]
	if !ok {
		candidates = openers["linux"]
	}
	for _, o := range candidates {
		if _, err := l.lookPath(o.command); err != nil {
			l.logger.Debug("opener not available", "command", o.command, "error", err)
			continue
		}
		args := append(append([]string{}, o.args...), rawURL)
		if err := l.start(o.command, args...); err != nil {
			l.logger.Debug("opener failed", "command", o.command, "error", err)
			continue
		}
		l.logger.Info("opened link", "command", o.command, "url", rawURL)
		return nil
	}

	return ErrNoOpener
}
