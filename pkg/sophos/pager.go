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
	"encoding/json"
	"time"
)

// defaultPagePacing is the fixed delay between page requests, to stay under
// the Central API rate limits.
const defaultPagePacing = 100 * time.Millisecond

const defaultPageSize = 100

// FetchPageFunc requests a single page. cursor is empty for the first page;
// limit is the page size to request upstream.
type FetchPageFunc func(ctx context.Context, cursor string, limit int) (*Page, error)

// Pager walks a cursor-paginated collection one page at a time. It is scoped
// to a single sync cycle and cannot be restarted; the cursor lives on the
// pager, never on the fetch function.
type Pager struct {
	fetch     FetchPageFunc
	pageSize  int
	remaining int // items left under the cap; -1 means unlimited
	pacing    time.Duration
	cursor    string
	started   bool
	done      bool
	pages     int
}

// NewPager creates a pager over fetch. itemCap <= 0 means unlimited.
func NewPager(fetch FetchPageFunc, pageSize, itemCap int, pacing time.Duration) *Pager {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	remaining := itemCap
	if itemCap <= 0 {
		remaining = -1
	}

	return &Pager{
		fetch:     fetch,
		pageSize:  pageSize,
		remaining: remaining,
		pacing:    pacing,
	}
}

// Done reports whether the sequence is exhausted. Once done, Next returns no
// further items.
func (p *Pager) Done() bool {
	return p.done
}

// Pages returns the number of pages fetched so far.
func (p *Pager) Pages() int {
	return p.pages
}

// Next fetches the next page and returns its items. The requested page size
// shrinks on later pages so the cumulative item cap is never exceeded; a
// final page that overshoots the cap is truncated rather than triggering an
// extra request. A fetch error marks the pager done; items from earlier
// pages remain valid.
func (p *Pager) Next(ctx context.Context) ([]json.RawMessage, error) {
	if p.done {
		return nil, nil
	}

	if p.started && p.pacing > 0 {
		select {
		case <-ctx.Done():
			p.done = true
			return nil, ctx.Err()
		case <-time.After(p.pacing):
		}
	}

	limit := p.pageSize
	if p.remaining >= 0 && p.remaining < limit {
		limit = p.remaining
	}

	p.started = true

	page, err := p.fetch(ctx, p.cursor, limit)
	if err != nil {
		p.done = true
		return nil, err
	}

	p.pages++

	items := page.Items
	if p.remaining >= 0 && len(items) > p.remaining {
		items = items[:p.remaining]
	}

	if p.remaining >= 0 {
		p.remaining -= len(items)
	}

	p.cursor = page.NextKey

	if len(items) == 0 || page.NextKey == "" || p.remaining == 0 {
		p.done = true
	}

	return items, nil
}
