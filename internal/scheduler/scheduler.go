// Package scheduler repeats a job on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrAlreadyStarted = errors.New("scheduler already started")

// Job is one scheduled unit of work. It should return when ctx is done.
type Job func(ctx context.Context)

type Scheduler struct {
	interval   time.Duration
	runOnStart bool
	job        Job

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(interval time.Duration, runOnStart bool, job Job) *Scheduler {
	return &Scheduler{interval: interval, runOnStart: runOnStart, job: job}
}

// Start runs the job every interval until ctx is done or Stop is called. Runs
// never overlap: a tick that fires while the job is still going is dropped.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, s.done)

	slog.Info("scheduler started", "interval", s.interval, "run_on_start", s.runOnStart)
	return nil
}

// Stop cancels the running job and waits for the loop to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	slog.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if s.runOnStart {
		s.run(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("panic in scheduled job", "panic", p)
		}
	}()

	s.job(ctx)
}
