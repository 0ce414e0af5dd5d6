/*
 * Copyright 2025 Helmguard Security
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package scheduler runs registered sync jobs on independent intervals with
// at most one in-flight cycle per job.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helmguard/centralsync/pkg/models"
)

// defaultTick is the coarse poll granularity for due-job detection.
const defaultTick = time.Minute

// JobFunc runs one sync cycle and reports its result.
type JobFunc func(ctx context.Context) models.CycleResult

// Job is a periodic cycle registration.
type Job struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
}

// JobStatus is the observable state of one registered job.
type JobStatus struct {
	NextRun    time.Time
	LastResult *models.CycleResult
}

type job struct {
	Job
	nextRun    time.Time
	inFlight   atomic.Bool
	mu         sync.Mutex
	lastResult *models.CycleResult
}

func (j *job) setResult(result models.CycleResult) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.lastResult = &result
}

func (j *job) result() *models.CycleResult {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.lastResult
}

// Scheduler drives registered jobs from a single background loop. A job
// whose previous cycle is still running when its due time passes is skipped
// for that round, not queued.
type Scheduler struct {
	mu         sync.Mutex
	running    bool
	registered []Job
	jobs       []*job
	tick       time.Duration
	clock      Clock
	logger     zerolog.Logger
	done       chan struct{}
	wg         sync.WaitGroup
}

// New creates a Scheduler. A nil clock uses real time.
func New(clock Clock, log zerolog.Logger) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}

	return &Scheduler{
		tick:   defaultTick,
		clock:  clock,
		logger: log,
	}
}

// Register adds a job. Registration takes effect on the next Start.
func (s *Scheduler) Register(j Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registered = append(s.registered, j)
}

// Start arms all registered jobs and launches the background loop. Starting
// an already-running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	now := s.clock.Now()
	s.jobs = make([]*job, 0, len(s.registered))

	for _, reg := range s.registered {
		s.jobs = append(s.jobs, &job{Job: reg, nextRun: now.Add(reg.Interval)})

		s.logger.Info().
			Str("job", reg.Name).
			Dur("interval", reg.Interval).
			Msg("Registered sync job")
	}

	s.running = true
	s.done = make(chan struct{})

	s.wg.Add(1)

	go s.run(ctx, s.done)

	return nil
}

func (s *Scheduler) run(ctx context.Context, done <-chan struct{}) {
	defer s.wg.Done()

	ticker := s.clock.Ticker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.Chan():
			s.runPending(ctx)
		}
	}
}

// runPending starts every job whose due time has passed. The due time always
// advances, so a tick that finds the previous cycle still in flight is
// dropped rather than deferred.
func (s *Scheduler) runPending(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	now := s.clock.Now()

	for _, j := range s.jobs {
		if now.Before(j.nextRun) {
			continue
		}

		j.nextRun = now.Add(j.Interval)

		if !j.inFlight.CompareAndSwap(false, true) {
			s.logger.Warn().
				Str("job", j.Name).
				Msg("Previous cycle still running; skipping this tick")

			continue
		}

		s.wg.Add(1)

		go s.runJob(ctx, j)
	}
}

func (s *Scheduler) runJob(ctx context.Context, j *job) {
	defer s.wg.Done()
	defer j.inFlight.Store(false)

	runID := uuid.NewString()
	log := s.logger.With().Str("job", j.Name).Str("run_id", runID).Logger()

	log.Info().Msg("Starting sync cycle")

	result := j.Run(ctx)
	j.setResult(result)

	if result.Success {
		log.Info().
			Int("items", result.Items).
			Msg("Sync cycle succeeded")
	} else {
		// Failures never stop the scheduler; the next interval is the retry.
		log.Error().
			Str("error", result.Error).
			Int("items", result.Items).
			Msg("Sync cycle failed")
	}
}

// Stop clears all registered jobs and waits for in-flight cycles to finish.
// No new cycle starts after Stop returns.
func (s *Scheduler) Stop(_ context.Context) error {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		return nil
	}

	s.running = false
	close(s.done)
	s.jobs = nil
	s.mu.Unlock()

	s.wg.Wait()

	return nil
}

// Running reports whether the scheduling loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Status reports the per-job next run times and last results.
func (s *Scheduler) Status() (running bool, jobs map[string]JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs = make(map[string]JobStatus, len(s.jobs))

	for _, j := range s.jobs {
		jobs[j.Name] = JobStatus{NextRun: j.nextRun, LastResult: j.result()}
	}

	return s.running, jobs
}
