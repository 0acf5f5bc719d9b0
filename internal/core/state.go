package core

import (
	"time"

	"github.com/lumipallolabs/sizemap/internal/model"
)

// Phase represents the current stage of the scan pipeline.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseAggregating
	PhaseComplete
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning files"
	case PhaseAggregating:
		return "Computing sizes"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState holds the current scan state
type ScanState struct {
	Phase        Phase
	StartTime    time.Time
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
}

// IsScanning returns true if a scan is in progress (including the brief "Complete" display)
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning || s.Phase == PhaseAggregating || s.Phase == PhaseComplete
}

// Elapsed returns time since scan started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// AppState holds a read-only snapshot of the controller state.
type AppState struct {
	Path   string
	Root   *model.Node
	Total  int64
	Volume model.Volume
	Scan   ScanState
	Error  error
}
