//go:build windows

package scanner

import (
	"io/fs"
	"sync"
)

// deviceInfo identifies the filesystem holding the scan root
type deviceInfo struct {
	// Windows drives are scanned one at a time; no mount detection needed.
}

// rootDevice returns the device of the root path, for mount-point detection
func rootDevice(path string) deviceInfo {
	return deviceInfo{}
}

// skipDir reports whether the directory should be skipped. Drives are
// separate namespaces on Windows, so nothing is skipped.
func skipDir(path string, d fs.DirEntry, root deviceInfo, seen *sync.Map) bool {
	return false
}

// fileSize returns the file's byte count. Windows reports the logical size;
// disk-usage mode falls back to the same value.
func fileSize(info fs.FileInfo, diskUsage bool, seen *sync.Map) int64 {
	return info.Size()
}
