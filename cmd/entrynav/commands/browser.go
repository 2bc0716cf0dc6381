package commands

import (
	"log/slog"
	"os/exec"
	"runtime"

	"git.home.luguber.info/inful/entrynav/internal/logfields"
)

// browserCommand returns the command that opens url on goos.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// openBrowser opens url in the default browser. Failures are logged only.
func openBrowser(url string) {
	name, args := browserCommand(runtime.GOOS, url)
	if _, err := exec.LookPath(name); err != nil {
		slog.Warn("No browser launcher found", slog.String("command", name))
		return
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		slog.Warn("Failed to open browser", logfields.URL(url), logfields.Error(err))
		return
	}
	go func() { _ = cmd.Wait() }()
}
