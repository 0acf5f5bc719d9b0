//go:build !windows

package scanner

import (
	"io/fs"
	"sync"
	"syscall"
)

// deviceInfo identifies the filesystem holding the scan root
type deviceInfo struct {
	dev uint64
}

// rootDevice returns the device of the root path, for mount-point detection
func rootDevice(path string) deviceInfo {
	var stat syscall.Stat_t
	if err := syscall.Stat(path, &stat); err != nil {
		return deviceInfo{}
	}
	return deviceInfo{dev: uint64(stat.Dev)}
}

// skipDir reports whether the directory crosses onto another filesystem or
// has already been seen through another link (firmlinks on macOS).
func skipDir(path string, d fs.DirEntry, root deviceInfo, seen *sync.Map) bool {
	info, err := d.Info()
	if err != nil {
		return false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}

	if uint64(stat.Dev) != root.dev {
		return true
	}

	if _, exists := seen.LoadOrStore(stat.Ino, true); exists {
		return true
	}

	return false
}

// fileSize returns the file's byte count, or -1 for a hard link that was
// already counted under another path. In disk-usage mode the allocated
// blocks are counted (512-byte units, which also handles sparse files);
// otherwise the stat-reported length is used.
func fileSize(info fs.FileInfo, diskUsage bool, seen *sync.Map) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}

	if stat.Nlink > 1 {
		if _, exists := seen.LoadOrStore(stat.Ino, true); exists {
			return -1
		}
	}

	if !diskUsage {
		return info.Size()
	}
	return stat.Blocks * 512
}
