package model

import "testing"

func TestVolumeFor(t *testing.T) {
	v := VolumeFor(t.TempDir())
	if v.TotalBytes == 0 {
		t.Skip("volume stats unavailable on this filesystem")
	}
	if v.FreeBytes > v.TotalBytes {
		t.Errorf("free %d exceeds total %d", v.FreeBytes, v.TotalBytes)
	}
	if v.UsedBytes() != v.TotalBytes-v.FreeBytes {
		t.Error("UsedBytes mismatch")
	}
	pct := v.UsedPercent()
	if pct < 0 || pct > 100 {
		t.Errorf("UsedPercent out of range: %f", pct)
	}
}

func TestVolumeZero(t *testing.T) {
	var v Volume
	if v.UsedPercent() != 0 {
		t.Error("zero volume should report 0% used")
	}
}
