package model

// Volume holds capacity information for the filesystem containing a path.
type Volume struct {
	Path       string
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this volume.
func (v Volume) UsedBytes() int64 {
	return v.TotalBytes - v.FreeBytes
}

// UsedPercent returns the percentage of the volume in use.
func (v Volume) UsedPercent() float64 {
	if v.TotalBytes == 0 {
		return 0
	}
	return float64(v.UsedBytes()) / float64(v.TotalBytes) * 100
}

// VolumeFor stats the filesystem containing path. A zero Volume with the
// path set is returned when the platform call fails; callers treat
// TotalBytes == 0 as "unknown".
func VolumeFor(path string) Volume {
	total, free := diskSpace(path)
	return Volume{Path: path, TotalBytes: total, FreeBytes: free}
}
