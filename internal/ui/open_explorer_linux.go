//go:build linux

package ui

import "os/exec"

// openInFileManager opens the given path with the default handler
func openInFileManager(path string) error {
	return exec.Command("xdg-open", path).Start()
}
