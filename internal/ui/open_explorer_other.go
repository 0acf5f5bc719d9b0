//go:build !windows && !darwin && !linux

package ui

// openInFileManager is a no-op on platforms without a known file manager
func openInFileManager(path string) error {
	return nil
}
