package ui

import (
	"errors"
	"testing"

	"github.com/lumipallolabs/sizemap/internal/config"
	"github.com/lumipallolabs/sizemap/internal/core"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	ctrl := core.NewController(t.TempDir(), core.Options{})
	return NewApp(ctrl, config.Layout{MinCell: 1})
}

func TestSpinnerTickReschedulesWhileScanning(t *testing.T) {
	a := newTestApp(t)
	a.scanning = true

	_, cmd := a.Update(spinnerTickMsg{})
	if cmd == nil {
		t.Error("tick should reschedule while a scan is running")
	}
}

func TestSpinnerTickStopsAfterFailedScan(t *testing.T) {
	a := newTestApp(t)
	a.scanning = false
	a.root = nil
	a.err = errors.New("scan root /nope: permission denied")

	_, cmd := a.Update(spinnerTickMsg{})
	if cmd != nil {
		t.Error("tick must not reschedule once a failed scan has stopped")
	}
}
