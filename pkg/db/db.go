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

// Package db persists collection records in Postgres.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/helmguard/centralsync/pkg/models"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS endpoints (
	endpoint_id   TEXT PRIMARY KEY,
	hostname      TEXT,
	os_name       TEXT,
	endpoint_type TEXT,
	online        BOOLEAN NOT NULL DEFAULT FALSE,
	health_status TEXT,
	group_name    TEXT,
	ip_addresses  TEXT[],
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS siem_events (
	event_id    TEXT PRIMARY KEY,
	endpoint_id TEXT,
	event_type  TEXT,
	severity    TEXT,
	source      TEXT,
	name        TEXT,
	location    TEXT,
	group_name  TEXT,
	created_at  TIMESTAMPTZ,
	"when"      TIMESTAMPTZ,
	raw_data    JSONB,
	fetched_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_siem_events_endpoint_id ON siem_events (endpoint_id);
CREATE INDEX IF NOT EXISTS idx_siem_events_severity ON siem_events (severity);
`

const upsertEndpointSQL = `
INSERT INTO endpoints (
	endpoint_id, hostname, os_name, endpoint_type, online,
	health_status, group_name, ip_addresses, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (endpoint_id) DO UPDATE SET
	hostname      = EXCLUDED.hostname,
	os_name       = EXCLUDED.os_name,
	endpoint_type = EXCLUDED.endpoint_type,
	online        = EXCLUDED.online,
	health_status = EXCLUDED.health_status,
	group_name    = EXCLUDED.group_name,
	ip_addresses  = EXCLUDED.ip_addresses,
	updated_at    = EXCLUDED.updated_at
`

const insertEventSQL = `
INSERT INTO siem_events (
	event_id, endpoint_id, event_type, severity, source,
	name, location, group_name, created_at, "when", raw_data
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (event_id) DO NOTHING
`

// Store is a Postgres-backed record store.
type Store struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// New connects to Postgres and bootstraps the schema.
func New(ctx context.Context, connString string, log zerolog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return &Store{pool: pool, logger: log}, nil
}

// UpsertEndpoint inserts or overwrites the inventory record for the
// endpoint ID. All mutable fields are replaced on conflict.
func (s *Store) UpsertEndpoint(ctx context.Context, endpoint *models.Endpoint) error {
	_, err := s.pool.Exec(ctx, upsertEndpointSQL,
		endpoint.EndpointID,
		endpoint.Hostname,
		endpoint.OSName,
		endpoint.Type,
		endpoint.Online,
		endpoint.HealthStatus,
		endpoint.GroupName,
		endpoint.IPAddresses,
		endpoint.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert endpoint %s: %w", endpoint.EndpointID, err)
	}

	return nil
}

// InsertEvent stores the event unless one with the same event ID exists.
// Existing rows are never modified; events are immutable once stored.
func (s *Store) InsertEvent(ctx context.Context, event *models.SIEMEvent) error {
	_, err := s.pool.Exec(ctx, insertEventSQL,
		event.EventID,
		event.EndpointID,
		event.Type,
		event.Severity,
		event.Source,
		event.Name,
		event.Location,
		event.Group,
		event.CreatedAt,
		event.When,
		event.Raw,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.EventID, err)
	}

	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
