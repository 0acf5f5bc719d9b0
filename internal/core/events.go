package core

import "github.com/lumipallolabs/sizemap/internal/model"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Path string
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent is emitted during scanning
type ScanProgressEvent struct {
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
}

func (ScanProgressEvent) isEvent() {}

// PhaseChangedEvent is emitted when the pipeline moves to a new phase
type PhaseChangedEvent struct {
	Phase Phase
}

func (PhaseChangedEvent) isEvent() {}

// ScanCompletedEvent is emitted when the scan finishes. Root is the
// aggregated tree; on cancellation it holds the partial tree alongside
// the context error.
type ScanCompletedEvent struct {
	Root  *model.Node
	Total int64
	Err   error
}

func (ScanCompletedEvent) isEvent() {}

// ErrorEvent is emitted when a scan fails outright
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
