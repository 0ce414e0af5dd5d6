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

// Package models holds the shared data types for the collector.
package models

import (
	"encoding/json"
	"time"
)

// Endpoint is a single device from the Central endpoint inventory. Records are
// mutable: every sync cycle overwrites all fields for an existing endpoint ID.
type Endpoint struct {
	EndpointID   string    `json:"endpoint_id"`
	Hostname     string    `json:"hostname"`
	OSName       string    `json:"os_name"`
	Type         string    `json:"type"`
	Online       bool      `json:"online"`
	HealthStatus string    `json:"health_status"`
	GroupName    string    `json:"group_name"`
	IPAddresses  []string  `json:"ip_addresses"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SIEMEvent is a single security event from the Central SIEM stream. Events are
// immutable once stored; re-delivered events are dropped by the store.
type SIEMEvent struct {
	EventID    string          `json:"event_id"`
	EndpointID string          `json:"endpoint_id"`
	Type       string          `json:"type"`
	Severity   string          `json:"severity"`
	Source     string          `json:"source"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Group      string          `json:"group"`
	CreatedAt  *time.Time      `json:"created_at"`
	When       *time.Time      `json:"when"`
	Raw        json.RawMessage `json:"raw"`
}

// CycleResult summarizes one sync cycle.
type CycleResult struct {
	Success              bool   `json:"success"`
	Items                int    `json:"item_count"`
	Pages                int    `json:"pages_processed,omitempty"`
	LatestEventTimestamp string `json:"latest_event_timestamp,omitempty"`
	Error                string `json:"error,omitempty"`
}

// SchedulerStatus reports the scheduler state for observability.
type SchedulerStatus struct {
	Running          bool       `json:"running"`
	NextInventoryRun *time.Time `json:"next_inventory_run"`
	NextEventRun     *time.Time `json:"next_event_run"`
}
