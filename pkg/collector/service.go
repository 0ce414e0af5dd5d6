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

// Package collector wires the Sophos Central client, ingestion engine,
// record store, checkpoint store and scheduler into one service.
package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/helmguard/centralsync/pkg/checkpoint"
	"github.com/helmguard/centralsync/pkg/db"
	"github.com/helmguard/centralsync/pkg/ingest"
	"github.com/helmguard/centralsync/pkg/models"
	"github.com/helmguard/centralsync/pkg/scheduler"
	"github.com/helmguard/centralsync/pkg/sophos"
)

const (
	jobEndpointSync = "endpoint_sync"
	jobEventSync    = "event_sync"
)

// Service is the collector: a scheduler driving the ingestion engine against
// one Central tenant.
type Service struct {
	config      Config
	store       *db.Store
	checkpoints checkpoint.Store
	engine      *ingest.Engine
	scheduler   *scheduler.Scheduler
	logger      zerolog.Logger
}

// New builds a Service from a validated config.
func New(ctx context.Context, config *Config, log zerolog.Logger) (*Service, error) {
	store, err := db.New(ctx, config.DatabaseURL, log.With().Str("component", "db").Logger())
	if err != nil {
		return nil, err
	}

	checkpoints, err := newCheckpointStore(ctx, config.Checkpoint)
	if err != nil {
		store.Close()

		return nil, err
	}

	client := sophos.NewClient(config.Sophos, log.With().Str("component", "sophos").Logger())
	tokens := sophos.NewCachedTokenProvider(client)

	engine := ingest.NewEngine(client, tokens, store, checkpoints, config.Ingest,
		log.With().Str("component", "ingest").Logger())

	s := &Service{
		config:      *config,
		store:       store,
		checkpoints: checkpoints,
		engine:      engine,
		scheduler:   scheduler.New(nil, log.With().Str("component", "scheduler").Logger()),
		logger:      log,
	}

	s.registerJobs()

	return s, nil
}

func newCheckpointStore(ctx context.Context, config CheckpointConfig) (checkpoint.Store, error) {
	if config.Backend == checkpointBackendNATS {
		return checkpoint.NewNatsStore(ctx, config.NATSURL, config.Bucket)
	}

	return checkpoint.NewFileStore(config.Dir)
}

func (s *Service) registerJobs() {
	if !s.config.EndpointSync.Disabled {
		s.scheduler.Register(scheduler.Job{
			Name:     jobEndpointSync,
			Interval: time.Duration(s.config.EndpointSync.Interval),
			Run:      s.engine.SyncEndpoints,
		})
	}

	if !s.config.EventSync.Disabled {
		s.scheduler.Register(scheduler.Job{
			Name:     jobEventSync,
			Interval: time.Duration(s.config.EventSync.Interval),
			Run:      s.engine.SyncEvents,
		})
	}
}

// Start launches the scheduling loop.
func (s *Service) Start(ctx context.Context) error {
	return s.scheduler.Start(ctx)
}

// Stop halts scheduling, waits for in-flight cycles, and releases resources.
func (s *Service) Stop(ctx context.Context) error {
	err := s.scheduler.Stop(ctx)

	if cerr := s.checkpoints.Close(); cerr != nil {
		s.logger.Error().Err(cerr).Msg("Error closing checkpoint store")
	}

	s.store.Close()

	return err
}

// Status reports the scheduler state.
func (s *Service) Status() models.SchedulerStatus {
	running, jobs := s.scheduler.Status()

	status := models.SchedulerStatus{Running: running}

	if js, ok := jobs[jobEndpointSync]; ok {
		next := js.NextRun
		status.NextInventoryRun = &next
	}

	if js, ok := jobs[jobEventSync]; ok {
		next := js.NextRun
		status.NextEventRun = &next
	}

	return status
}

// SyncEndpointsNow runs one inventory cycle synchronously, outside the
// schedule.
func (s *Service) SyncEndpointsNow(ctx context.Context) models.CycleResult {
	return s.engine.SyncEndpoints(ctx)
}

// SyncEventsNow runs one event cycle synchronously, outside the schedule.
func (s *Service) SyncEventsNow(ctx context.Context) models.CycleResult {
	return s.engine.SyncEvents(ctx)
}
