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

// Package sophos is a client for the Sophos Central endpoint and SIEM APIs.
package sophos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultIdentityURL = "https://id.sophos.com"
	defaultAPIBaseURL  = "https://api-us01.central.sophos.com"
	defaultHTTPTimeout = 30 * time.Second

	endpointsPath  = "/endpoint/v1/endpoints"
	siemEventsPath = "/siem/v1/events"
)

// Config holds the tenant credentials and API locations for one Central tenant.
type Config struct {
	// APIBaseURL is the regional data gateway, e.g. https://api-us01.central.sophos.com.
	APIBaseURL string `json:"api_base_url"`
	// IdentityURL is the token endpoint host. Defaults to https://id.sophos.com.
	IdentityURL  string `json:"identity_url"`
	TenantID     string `json:"tenant_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	// EventTypeFilter restricts the SIEM feed to one event type when set.
	EventTypeFilter string `json:"event_type_filter,omitempty"`
	// IPAddressField selects which payload key carries endpoint IPs
	// (ipv4Addresses or ipAddresses).
	IPAddressField string `json:"ip_address_field,omitempty"`
}

// Client talks to the Central APIs for a single tenant.
type Client struct {
	config     Config
	httpClient *http.Client
	pacing     time.Duration
	logger     zerolog.Logger
}

// NewClient creates a Client, applying URL defaults.
func NewClient(config Config, log zerolog.Logger) *Client {
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultAPIBaseURL
	}

	if config.IdentityURL == "" {
		config.IdentityURL = defaultIdentityURL
	}

	if config.IPAddressField == "" {
		config.IPAddressField = IPFieldDefault
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		pacing:     defaultPagePacing,
		logger:     log,
	}
}

// IPAddressField returns the configured payload key for endpoint IPs.
func (c *Client) IPAddressField() string {
	return c.config.IPAddressField
}

// fetchPage performs one GET against a paginated collection endpoint.
func (c *Client) fetchPage(ctx context.Context, token, path string, params url.Values) (*Page, error) {
	reqURL := c.config.APIBaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Tenant-ID", c.config.TenantID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var envelope pageEnvelope

	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &Page{Items: envelope.Items, NextKey: envelope.Pages.NextKey}, nil
}

// EndpointPager walks the full endpoint inventory. pageSize is the page size
// requested upstream; itemCap bounds the total items yielded (0 = unlimited).
func (c *Client) EndpointPager(token string, pageSize, itemCap int) *Pager {
	fetch := func(ctx context.Context, cursor string, limit int) (*Page, error) {
		params := url.Values{}
		params.Set("pageSize", strconv.Itoa(limit))

		if cursor != "" {
			params.Set("pageFromKey", cursor)
		}

		return c.fetchPage(ctx, token, endpointsPath, params)
	}

	return NewPager(fetch, pageSize, itemCap, c.pacing)
}

// EventPager walks the SIEM event feed. since filters events by timestamp
// when non-empty; itemCap bounds the total items yielded (0 = unlimited).
func (c *Client) EventPager(token, since string, pageSize, itemCap int) *Pager {
	fetch := func(ctx context.Context, cursor string, limit int) (*Page, error) {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(limit))

		if since != "" {
			params.Set("since", since)
		}

		if c.config.EventTypeFilter != "" {
			params.Set("eventType", c.config.EventTypeFilter)
		}

		if cursor != "" {
			params.Set("pageFromKey", cursor)
		}

		return c.fetchPage(ctx, token, siemEventsPath, params)
	}

	return NewPager(fetch, pageSize, itemCap, c.pacing)
}
