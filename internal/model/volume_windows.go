//go:build windows

package model

import "golang.org/x/sys/windows"

func diskSpace(path string) (total, free int64) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}
	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	err = windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes)
	if err != nil {
		return 0, 0
	}
	return int64(totalBytes), int64(freeBytesAvailable)
}
