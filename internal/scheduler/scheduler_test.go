package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestJobsRunImmediatelyAndOnCadence(t *testing.T) {
	var runs atomic.Int64

	s := New()
	s.Add("counter", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Start(context.Background())

	time.Sleep(110 * time.Millisecond)
	s.Stop()

	got := runs.Load()
	// Immediate run plus ~5 ticks; allow slack for scheduling jitter.
	if got < 3 {
		t.Errorf("job ran %d times, want at least 3", got)
	}
}

func TestSlowJobSkipsTicksInsteadOfOverlapping(t *testing.T) {
	var inFlight atomic.Int64
	var maxInFlight atomic.Int64
	var runs atomic.Int64

	s := New()
	s.Add("slow", 10*time.Millisecond, func(ctx context.Context) error {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		runs.Add(1)
		time.Sleep(35 * time.Millisecond)
		return nil
	})
	s.Start(context.Background())

	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if maxInFlight.Load() > 1 {
		t.Errorf("job overlapped itself: max in-flight %d", maxInFlight.Load())
	}
	// Ticks during a run are skipped, so far fewer runs than ticks.
	if runs.Load() > 6 {
		t.Errorf("job ran %d times in 120ms at 35ms per run, skipping is broken", runs.Load())
	}
}

func TestIndependentJobsDoNotBlockEachOther(t *testing.T) {
	var fastRuns atomic.Int64

	s := New()
	s.Add("stuck", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-time.After(10 * time.Second):
		}
		return nil
	})
	s.Add("fast", 15*time.Millisecond, func(ctx context.Context) error {
		fastRuns.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	time.Sleep(100 * time.Millisecond)
	cancel()
	s.Stop()

	if fastRuns.Load() < 3 {
		t.Errorf("fast job ran %d times while the other was stuck, want at least 3", fastRuns.Load())
	}
}

func TestPanicInJobDoesNotStopSchedule(t *testing.T) {
	var runs atomic.Int64

	s := New()
	s.Add("panicky", 15*time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			panic("boom")
		}
		return nil
	})
	s.Start(context.Background())

	time.Sleep(80 * time.Millisecond)
	s.Stop()

	if runs.Load() < 2 {
		t.Errorf("schedule stopped after panic: %d runs", runs.Load())
	}
}

func TestFailingJobDoesNotStopSchedule(t *testing.T) {
	var runs atomic.Int64

	s := New()
	s.Add("failing", 15*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("cycle error")
	})
	s.Start(context.Background())

	time.Sleep(80 * time.Millisecond)
	s.Stop()

	if runs.Load() < 2 {
		t.Errorf("schedule stopped after error: %d runs", runs.Load())
	}
}

func TestStopWaitsForRunningJob(t *testing.T) {
	var finished atomic.Bool

	s := New()
	s.Add("finisher", time.Hour, func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})
	s.Start(context.Background())

	time.Sleep(10 * time.Millisecond)
	s.Stop()

	if !finished.Load() {
		t.Error("Stop returned before the in-flight run completed")
	}
}
