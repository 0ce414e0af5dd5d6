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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []json.RawMessage {
	items := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, json.RawMessage(fmt.Sprintf(`{"id":"item-%d"}`, i)))
	}

	return items
}

// fakeSource serves canned pages and records the cursor and limit of every
// fetch call.
type fakeSource struct {
	pages   []*Page
	err     error
	errOn   int // 1-based call number to fail on; 0 means never
	calls   int
	cursors []string
	limits  []int
}

func (f *fakeSource) fetch(_ context.Context, cursor string, limit int) (*Page, error) {
	f.calls++
	f.cursors = append(f.cursors, cursor)
	f.limits = append(f.limits, limit)

	if f.errOn != 0 && f.calls == f.errOn {
		return nil, f.err
	}

	if f.calls > len(f.pages) {
		return &Page{}, nil
	}

	return f.pages[f.calls-1], nil
}

func TestPager_WalksAllPages(t *testing.T) {
	src := &fakeSource{
		pages: []*Page{
			{Items: makeItems(100), NextKey: "k1"},
			{Items: makeItems(100), NextKey: "k2"},
			{Items: makeItems(40)},
		},
	}
	pager := NewPager(src.fetch, 100, 0, 0)

	total := 0

	for !pager.Done() {
		items, err := pager.Next(context.Background())
		require.NoError(t, err)

		total += len(items)
	}

	assert.Equal(t, 240, total)
	assert.Equal(t, 3, pager.Pages())
	assert.Equal(t, []string{"", "k1", "k2"}, src.cursors)
	assert.Equal(t, []int{100, 100, 100}, src.limits)
}

func TestPager_StopsOnEmptyPage(t *testing.T) {
	src := &fakeSource{
		pages: []*Page{
			{Items: makeItems(10), NextKey: "k1"},
			{NextKey: "k2"},
		},
	}
	pager := NewPager(src.fetch, 100, 0, 0)

	items, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.False(t, pager.Done())

	items, err = pager.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, pager.Done())
	assert.Equal(t, 2, src.calls)
}

func TestPager_ItemCap(t *testing.T) {
	t.Run("truncates final page without extra request", func(t *testing.T) {
		src := &fakeSource{
			pages: []*Page{
				{Items: makeItems(100), NextKey: "k1"},
				{Items: makeItems(100), NextKey: "k2"},
			},
		}
		pager := NewPager(src.fetch, 100, 150, 0)

		items, err := pager.Next(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 100)
		assert.False(t, pager.Done())

		items, err = pager.Next(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 50)
		assert.True(t, pager.Done())

		// Second request already shrank to the remaining budget, and no
		// third request happened.
		assert.Equal(t, []int{100, 50}, src.limits)
		assert.Equal(t, 2, src.calls)
	})

	t.Run("cap smaller than one page", func(t *testing.T) {
		src := &fakeSource{
			pages: []*Page{
				{Items: makeItems(30), NextKey: "k1"},
			},
		}
		pager := NewPager(src.fetch, 100, 30, 0)

		items, err := pager.Next(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 30)
		assert.True(t, pager.Done())
		assert.Equal(t, []int{30}, src.limits)
	})

	t.Run("server returns more than requested", func(t *testing.T) {
		src := &fakeSource{
			pages: []*Page{
				{Items: makeItems(80), NextKey: "k1"},
			},
		}
		pager := NewPager(src.fetch, 100, 50, 0)

		items, err := pager.Next(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 50)
		assert.True(t, pager.Done())
	})
}

func TestPager_FetchError(t *testing.T) {
	fetchErr := errors.New("boom")
	src := &fakeSource{
		pages: []*Page{
			{Items: makeItems(10), NextKey: "k1"},
		},
		err:   fetchErr,
		errOn: 2,
	}
	pager := NewPager(src.fetch, 100, 0, 0)

	items, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 10)

	items, err = pager.Next(context.Background())
	require.ErrorIs(t, err, fetchErr)
	assert.Empty(t, items)
	assert.True(t, pager.Done())

	// Only the first page counts as fetched
	assert.Equal(t, 1, pager.Pages())

	// Further calls are a no-op
	items, err = pager.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPager_CancelledContextDuringPacing(t *testing.T) {
	src := &fakeSource{
		pages: []*Page{
			{Items: makeItems(10), NextKey: "k1"},
			{Items: makeItems(10)},
		},
	}
	pager := NewPager(src.fetch, 100, 0, defaultPagePacing)

	ctx, cancel := context.WithCancel(context.Background())

	_, err := pager.Next(ctx)
	require.NoError(t, err)

	cancel()

	_, err = pager.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, pager.Done())
	assert.Equal(t, 1, src.calls)
}
