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

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/helmguard/centralsync/pkg/models"
	"github.com/helmguard/centralsync/pkg/sophos"
)

// SyncEvents runs one incremental cycle over the SIEM event stream. The
// checkpoint is the latest event timestamp persisted by any prior cycle; the
// fetch resumes from checkpoint minus the overlap window, and the checkpoint
// only advances after at least one event has been stored.
func (e *Engine) SyncEvents(ctx context.Context) models.CycleResult {
	token, err := e.tokens.GetAccessToken(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to get access token; aborting event cycle")

		return models.CycleResult{Success: false, Error: err.Error()}
	}

	prior, found, err := e.checkpoints.Read(ctx, eventCheckpointKey)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to read event checkpoint; aborting event cycle")

		return models.CycleResult{Success: false, Error: fmt.Sprintf("checkpoint read: %v", err)}
	}

	maxEvents := e.config.MaxEvents
	since := ""
	priorValid := true

	switch {
	case !found:
		// Bootstrap: no since filter, and a hard cap so the first cycle
		// cannot drain the remote's entire default horizon.
		maxEvents = bootstrapEventCap

		e.logger.Info().Int("max_events", maxEvents).Msg("No event checkpoint found; bootstrap cycle")
	default:
		ts, perr := time.Parse(time.RFC3339, prior)
		if perr != nil {
			// Degraded path: an unparseable checkpoint is used verbatim,
			// trading the overlap guarantee for forward progress.
			e.logger.Warn().Err(perr).
				Str("checkpoint", prior).
				Msg("Stored checkpoint is not a valid timestamp; using it verbatim without overlap")

			since = prior
			priorValid = false
		} else {
			since = ts.Add(-eventOverlapWindow).UTC().Format(time.RFC3339)
		}
	}

	pager := e.api.EventPager(token, since, e.config.EventPageSize, maxEvents)

	items := 0
	latest := ""

	var fetchErr error

	for !pager.Done() {
		raw, err := pager.Next(ctx)
		if err != nil {
			if sophos.IsAuthFailure(err) {
				e.tokens.InvalidateToken()
			}

			// Events persisted so far are kept; the checkpoint below only
			// reflects what actually landed in the store.
			fetchErr = err

			break
		}

		for _, itemRaw := range raw {
			ts, stored := e.storeEvent(ctx, itemRaw)
			if !stored {
				continue
			}

			items++

			if ts > latest {
				latest = ts
			}
		}
	}

	// ISO-8601 UTC timestamps order lexicographically, so string comparison
	// is the monotonicity check. An invalid prior value is always replaced;
	// otherwise the degraded path could never recover.
	if items > 0 && latest != "" && (!found || !priorValid || latest > prior) {
		if err := e.checkpoints.Write(ctx, eventCheckpointKey, latest); err != nil {
			e.logger.Error().Err(err).
				Str("checkpoint", latest).
				Msg("Failed to write event checkpoint; next cycle will re-fetch the window")
		}
	}

	result := models.CycleResult{
		Items:                items,
		Pages:                pager.Pages(),
		LatestEventTimestamp: latest,
	}

	if result.LatestEventTimestamp == "" {
		result.LatestEventTimestamp = prior
	}

	if fetchErr != nil {
		e.logger.Error().Err(fetchErr).
			Int("items", items).
			Msg("Event page fetch failed; ending cycle early")

		result.Error = fetchErr.Error()

		return result
	}

	result.Success = true

	e.logger.Info().
		Int("items", items).
		Int("pages", pager.Pages()).
		Str("latest_event_timestamp", result.LatestEventTimestamp).
		Msg("Event sync cycle complete")

	return result
}

// storeEvent decodes and persists one event, returning the timestamp string
// used for checkpoint tracking (created_at, falling back to when) and
// whether the event was handed to the store.
func (e *Engine) storeEvent(ctx context.Context, itemRaw json.RawMessage) (string, bool) {
	var item sophos.EventItem

	if err := json.Unmarshal(itemRaw, &item); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to decode event item; skipping")

		return "", false
	}

	if item.ID == "" {
		e.logger.Warn().Msg("Event item without id; skipping")

		return "", false
	}

	createdAt := e.parseEventTime(item.ID, item.CreatedAt)
	when := e.parseEventTime(item.ID, item.When)

	event := &models.SIEMEvent{
		EventID:    item.ID,
		EndpointID: item.EndpointID,
		Type:       item.Type,
		Severity:   item.Severity,
		Source:     item.Source,
		Name:       item.Name,
		Location:   item.Location,
		Group:      item.Group,
		CreatedAt:  createdAt,
		When:       when,
		Raw:        append(json.RawMessage(nil), itemRaw...),
	}

	if err := e.store.InsertEvent(ctx, event); err != nil {
		e.logger.Warn().Err(err).
			Str("event_id", item.ID).
			Msg("Failed to insert event; skipping")

		return "", false
	}

	// created_at wins when present; a malformed timestamp is excluded from
	// checkpoint tracking so garbage never becomes the watermark.
	switch {
	case item.CreatedAt != "" && createdAt != nil:
		return item.CreatedAt, true
	case item.CreatedAt == "" && when != nil:
		return item.When, true
	default:
		return "", true
	}
}

// parseEventTime parses an event timestamp. A malformed timestamp never
// aborts the cycle: the event is stored with a null timestamp instead.
func (e *Engine) parseEventTime(eventID, value string) *time.Time {
	if value == "" {
		return nil
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("event_id", eventID).
			Str("timestamp", value).
			Msg("Failed to parse event timestamp; storing null")

		return nil
	}

	return &ts
}
