package usecase

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30 * time.Millisecond)
	defer d.CancelPending()

	for i := 0; i < 10; i++ {
		d.Schedule(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDebouncerSpacedCallsFireIndividually(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(10 * time.Millisecond)
	defer d.CancelPending()

	for i := 0; i < 3; i++ {
		d.Schedule(func() { fired.Add(1) })
		time.Sleep(40 * time.Millisecond)
	}

	if got := fired.Load(); got != 3 {
		t.Errorf("fired %d times, want 3", got)
	}
}

func TestDebouncerLastCallbackWins(t *testing.T) {
	var got atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)
	defer d.CancelPending()

	d.Schedule(func() { got.Store(1) })
	d.Schedule(func() { got.Store(2) })

	time.Sleep(80 * time.Millisecond)
	if got.Load() != 2 {
		t.Errorf("got %d, want the later callback", got.Load())
	}
}

func TestDebouncerFlush(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(time.Hour)

	d.Schedule(func() { fired.Add(1) })
	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Fatalf("fired %d times after flush, want 1", got)
	}

	// Flush with nothing pending is a no-op.
	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDebouncerCancelPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)

	d.Schedule(func() { fired.Add(1) })
	d.CancelPending()

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times after cancel, want 0", got)
	}
}
