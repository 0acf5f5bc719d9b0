//go:build windows

package ui

import "os/exec"

// openInFileManager opens the given path in Windows Explorer
func openInFileManager(path string) error {
	return exec.Command("explorer.exe", path).Start()
}
