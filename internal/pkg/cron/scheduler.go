package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is one background task run on a fixed interval.
type JobFunc func(ctx context.Context) error

type job struct {
	name  string
	every time.Duration
	run   JobFunc

	mu      sync.Mutex
	runs    int
	lastErr error
}

// Scheduler runs registered jobs on fixed intervals until stopped. Each
// job fires immediately on Start and then once per interval; a failing
// run is logged and the schedule keeps going.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []*job
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a named job. Registration after Start is ignored.
func (s *Scheduler) AddJob(name string, every time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		slog.Warn("Cron job registered after start, ignored", "name", name)
		return
	}
	s.jobs = append(s.jobs, &job{name: name, every: every, run: fn})
	slog.Info("Cron job registered", "name", name, "every", every)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Cron scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(j *job) {
	defer s.wg.Done()

	// Fires immediately, then settles into the interval.
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			s.execute(s.ctx, j)
			timer.Reset(j.every)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, j *job) {
	began := time.Now()
	err := j.run(ctx)

	j.mu.Lock()
	j.runs++
	j.lastErr = err
	runs := j.runs
	j.mu.Unlock()

	if err != nil {
		slog.Error("Cron job failed", "name", j.name, "run", runs, "error", err, "took", time.Since(began))
		return
	}
	slog.Debug("Cron job done", "name", j.name, "run", runs, "took", time.Since(began))
}

// RunOnce executes every registered job a single time and returns the
// first failure. The horizon job is idempotent, so triggering it out of
// band never double-creates shifts.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := make([]*job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	var first error
	for _, j := range jobs {
		s.execute(ctx, j)
		j.mu.Lock()
		if first == nil && j.lastErr != nil {
			first = j.lastErr
		}
		j.mu.Unlock()
	}
	return first
}
