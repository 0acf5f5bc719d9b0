package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/sizemap/internal/model"
)

func writeTree(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "a.txt"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "sub", "b.txt"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}
	return tmp
}

func drain(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
}

func TestControllerScanPipeline(t *testing.T) {
	tmp := writeTree(t)

	c := NewController(tmp, Options{})
	events := drain(t, c.StartScan(context.Background()))

	var started bool
	var aggregated bool
	var completed *ScanCompletedEvent
	for _, ev := range events {
		switch e := ev.(type) {
		case ScanStartedEvent:
			started = true
		case PhaseChangedEvent:
			if e.Phase == PhaseAggregating {
				if completed != nil {
					t.Error("aggregation phase after completion")
				}
				aggregated = true
			}
		case ScanCompletedEvent:
			completed = &e
		}
	}
	if !started || !aggregated {
		t.Errorf("missing pipeline events: started=%v aggregated=%v", started, aggregated)
	}
	if completed == nil {
		t.Fatal("no completion event")
	}
	if completed.Err != nil {
		t.Fatalf("scan failed: %v", completed.Err)
	}
	if completed.Total != 150 {
		t.Errorf("total = %d, want 150", completed.Total)
	}

	state := c.State()
	if state.Root == nil || state.Root.Size != 150 {
		t.Error("controller state missing aggregated root")
	}
	if state.Scan.Phase != PhaseComplete {
		t.Errorf("phase = %v, want complete", state.Scan.Phase)
	}
}

func TestControllerParallelScanner(t *testing.T) {
	tmp := writeTree(t)

	c := NewController(tmp, Options{Parallel: true})
	events := drain(t, c.StartScan(context.Background()))

	var completed *ScanCompletedEvent
	for _, ev := range events {
		if e, ok := ev.(ScanCompletedEvent); ok {
			completed = &e
		}
	}
	if completed == nil || completed.Err != nil {
		t.Fatalf("parallel scan did not complete cleanly: %+v", completed)
	}
	if completed.Total != 150 {
		t.Errorf("total = %d, want 150", completed.Total)
	}
}

func TestControllerScanError(t *testing.T) {
	c := NewController(filepath.Join(t.TempDir(), "missing"), Options{})
	events := drain(t, c.StartScan(context.Background()))

	var gotErr bool
	for _, ev := range events {
		if e, ok := ev.(ErrorEvent); ok && e.Err != nil {
			gotErr = true
		}
	}
	if !gotErr {
		t.Error("expected an error event for a missing path")
	}
	if c.Root() != nil {
		t.Error("failed scan should not publish a root")
	}
}

func TestControllerCancelledScanKeepsPartialTree(t *testing.T) {
	tmp := writeTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController(tmp, Options{})
	events := drain(t, c.StartScan(ctx))

	var completed *ScanCompletedEvent
	for _, ev := range events {
		if e, ok := ev.(ScanCompletedEvent); ok {
			completed = &e
		}
	}
	if completed == nil {
		t.Fatal("no completion event")
	}
	if !errors.Is(completed.Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", completed.Err)
	}
	if completed.Root == nil {
		t.Error("cancelled scan should still publish the partial tree")
	}
}

func TestControllerRescanResets(t *testing.T) {
	tmp := writeTree(t)

	c := NewController(tmp, Options{})
	drain(t, c.StartScan(context.Background()))
	first := c.Root()

	if err := os.WriteFile(filepath.Join(tmp, "c.txt"), make([]byte, 25), 0o644); err != nil {
		t.Fatal(err)
	}
	drain(t, c.StartScan(context.Background()))
	second := c.Root()

	if first == second {
		t.Error("rescan should build a fresh tree")
	}
	if second.Size != 175 {
		t.Errorf("rescan total = %d, want 175", second.Size)
	}
	var sum int64
	for _, child := range second.Children {
		sum += child.Size
	}
	if sum != second.Size {
		t.Error("rescan tree inconsistent")
	}
	_ = model.Aggregate(second) // idempotent
	if second.Size != 175 {
		t.Error("re-aggregation changed totals")
	}
}
