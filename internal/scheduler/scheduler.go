// Package scheduler drives independent recurring jobs. Each job gets
// its own ticker goroutine so a slow ingestion cycle can never delay
// rescoring, and vice versa.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ghananews/aggregator/internal/logger"
	"github.com/ghananews/aggregator/internal/metrics"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
	running  atomic.Bool
}

// Scheduler runs registered jobs on their own cadence. Jobs run once
// immediately on Start. A tick that arrives while the same job is
// still running is skipped, never queued; a tick missed because of an
// overrun fires at most once (time.Ticker coalesces missed intervals).
type Scheduler struct {
	mu      sync.Mutex
	jobs    []*job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &job{name: name, interval: interval, run: run})
}

// Start launches one goroutine per job and returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, j)
	}
}

// Stop cancels all jobs and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, j *job) {
	defer s.wg.Done()

	s.fire(ctx, j)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.fire(ctx, j)
		case <-ctx.Done():
			return
		}
	}
}

// fire executes one run in its own goroutine unless the previous run
// of the same job is still going.
func (s *Scheduler) fire(ctx context.Context, j *job) {
	if !j.running.CompareAndSwap(false, true) {
		logger.Warn("previous run still in progress, skipping tick", "job", j.name)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer j.running.Store(false)
		safeRun(ctx, j)
	}()
}

// safeRun is the fault boundary: a panic or error inside a job body is
// logged and the schedule continues undisturbed.
func safeRun(ctx context.Context, j *job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", j.name, "panic", r)
			metrics.Global.SetError(fmt.Sprintf("%s panicked: %v", j.name, r))
		}
	}()

	start := time.Now()
	if err := j.run(ctx); err != nil {
		logger.Error("job failed", "job", j.name, "error", err)
		metrics.Global.SetError(fmt.Sprintf("%s: %v", j.name, err))
		return
	}
	logger.Debug("job finished", "job", j.name, "took", time.Since(start))
}
