package util

import (
	"os/exec"
	"runtime"
)

// OpenBrowser opens url in the default browser. Failures are not
// fatal; the caller can still reach the printed address by hand.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		// rundll32 works from Windows 7 through 11.
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
