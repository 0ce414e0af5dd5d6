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

package sophos

import (
	"context"
	"sync"
	"time"
)

// Central tokens expire after an hour; refresh well before that.
const cachedTokenLifetime = 45 * time.Minute

// CachedTokenProvider wraps a TokenProvider and caches the access token.
// Concurrent callers share one exchange; the lock is held only around the
// exchange call.
type CachedTokenProvider struct {
	provider TokenProvider
	mu       sync.RWMutex
	token    string
	expiry   time.Time
}

// NewCachedTokenProvider creates a new cached token provider.
func NewCachedTokenProvider(provider TokenProvider) *CachedTokenProvider {
	return &CachedTokenProvider{
		provider: provider,
	}
}

// GetAccessToken returns a cached token if valid, otherwise fetches a new one.
func (c *CachedTokenProvider) GetAccessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.token != "" && time.Now().Before(c.expiry) {
		token := c.token
		c.mu.RUnlock()

		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check in case another goroutine already fetched a token
	if c.token != "" && time.Now().Before(c.expiry) {
		return c.token, nil
	}

	token, err := c.provider.GetAccessToken(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiry = time.Now().Add(cachedTokenLifetime)

	return token, nil
}

// InvalidateToken clears the cached token. Called when a data request comes
// back 401/403; the next cycle re-obtains a fresh token.
func (c *CachedTokenProvider) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.expiry = time.Time{}
}
