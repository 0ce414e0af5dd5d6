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
	"time"

	"github.com/helmguard/centralsync/pkg/models"
	"github.com/helmguard/centralsync/pkg/sophos"
)

// SyncEndpoints runs one snapshot cycle over the endpoint inventory: every
// cycle walks the full remote collection and upserts each device by its
// endpoint ID. There is no checkpoint for inventory.
func (e *Engine) SyncEndpoints(ctx context.Context) models.CycleResult {
	token, err := e.tokens.GetAccessToken(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to get access token; aborting endpoint cycle")

		return models.CycleResult{Success: false, Error: err.Error()}
	}

	pager := e.api.EndpointPager(token, e.config.EndpointPageSize, 0)
	ipField := e.api.IPAddressField()

	items := 0

	for !pager.Done() {
		raw, err := pager.Next(ctx)
		if err != nil {
			if sophos.IsAuthFailure(err) {
				e.tokens.InvalidateToken()
			}

			// Records upserted from earlier pages stay in the store.
			e.logger.Error().Err(err).
				Int("items", items).
				Int("pages", pager.Pages()).
				Msg("Endpoint page fetch failed; ending cycle early")

			return models.CycleResult{
				Success: false,
				Items:   items,
				Pages:   pager.Pages(),
				Error:   err.Error(),
			}
		}

		for _, itemRaw := range raw {
			endpoint, ok := e.decodeEndpoint(itemRaw, ipField)
			if !ok {
				continue
			}

			if err := e.store.UpsertEndpoint(ctx, endpoint); err != nil {
				e.logger.Warn().Err(err).
					Str("endpoint_id", endpoint.EndpointID).
					Msg("Failed to upsert endpoint; skipping")

				continue
			}

			items++
		}
	}

	e.logger.Info().
		Int("items", items).
		Int("pages", pager.Pages()).
		Msg("Endpoint sync cycle complete")

	return models.CycleResult{Success: true, Items: items, Pages: pager.Pages()}
}

func (e *Engine) decodeEndpoint(itemRaw json.RawMessage, ipField string) (*models.Endpoint, bool) {
	var item sophos.EndpointItem

	if err := json.Unmarshal(itemRaw, &item); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to decode endpoint item; skipping")

		return nil, false
	}

	if item.ID == "" {
		e.logger.Warn().Msg("Endpoint item without id; skipping")

		return nil, false
	}

	return &models.Endpoint{
		EndpointID:   item.ID,
		Hostname:     item.Hostname,
		OSName:       item.OS.Name,
		Type:         item.Type,
		Online:       item.Online,
		HealthStatus: item.Health.Overall,
		GroupName:    item.Group.Name,
		IPAddresses:  item.IPs(ipField),
		UpdatedAt:    time.Now().UTC(),
	}, true
}
