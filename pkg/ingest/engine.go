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

// Package ingest runs the sync cycles that mirror the Central endpoint
// inventory and SIEM event stream into the local store.
package ingest

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/helmguard/centralsync/pkg/checkpoint"
)

const (
	// eventCheckpointKey is the checkpoint store key for the SIEM stream.
	eventCheckpointKey = "siem_events"

	// eventOverlapWindow is subtracted from the checkpoint before the next
	// fetch. Events whose server-side visibility lags their timestamp by up
	// to this window are re-offered instead of lost; the insert-if-absent
	// store absorbs the re-delivery.
	eventOverlapWindow = 5 * time.Minute

	// bootstrapEventCap bounds the very first event cycle, which has no
	// checkpoint and would otherwise drain the remote's whole horizon.
	bootstrapEventCap = 5000

	defaultEndpointPageCeiling = 500
	defaultEventPageSize       = 200
	defaultMaxEvents           = 10000
)

// Config tunes the two cycle types.
type Config struct {
	// EndpointPageSize is the requested inventory page size. Values above
	// EndpointPageCeiling are clamped.
	EndpointPageSize int `json:"endpoint_page_size"`
	// EndpointPageCeiling is the documented API maximum for inventory pages.
	EndpointPageCeiling int `json:"endpoint_page_ceiling"`
	// EventPageSize is the per-request SIEM page size.
	EventPageSize int `json:"event_page_size"`
	// MaxEvents caps one event cycle. Overridden to the bootstrap cap when
	// no checkpoint exists.
	MaxEvents int `json:"max_events"`
}

func (c *Config) applyDefaults() {
	if c.EndpointPageCeiling <= 0 {
		c.EndpointPageCeiling = defaultEndpointPageCeiling
	}

	if c.EndpointPageSize <= 0 || c.EndpointPageSize > c.EndpointPageCeiling {
		c.EndpointPageSize = c.EndpointPageCeiling
	}

	if c.EventPageSize <= 0 {
		c.EventPageSize = defaultEventPageSize
	}

	if c.MaxEvents <= 0 {
		c.MaxEvents = defaultMaxEvents
	}
}

// Engine orchestrates sync cycles. One Engine serves both collection types;
// the scheduler guarantees at most one in-flight cycle per type.
type Engine struct {
	api         PagerSource
	tokens      TokenProvider
	store       RecordStore
	checkpoints checkpoint.Store
	config      Config
	logger      zerolog.Logger
}

// NewEngine creates an Engine with config defaults applied.
func NewEngine(
	api PagerSource,
	tokens TokenProvider,
	store RecordStore,
	checkpoints checkpoint.Store,
	config Config,
	log zerolog.Logger,
) *Engine {
	config.applyDefaults()

	return &Engine{
		api:         api,
		tokens:      tokens,
		store:       store,
		checkpoints: checkpoints,
		config:      config,
		logger:      log,
	}
}
