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
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/helmguard/centralsync/pkg/sophos"
)

// fakeCheckpoints is an in-memory checkpoint store recording writes.
type fakeCheckpoints struct {
	mu       sync.Mutex
	values   map[string]string
	readErr  error
	writeErr error
	writes   []string
}

func newFakeCheckpoints() *fakeCheckpoints {
	return &fakeCheckpoints{values: make(map[string]string)}
}

func (f *fakeCheckpoints) Read(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readErr != nil {
		return "", false, f.readErr
	}

	value, found := f.values[key]

	return value, found, nil
}

func (f *fakeCheckpoints) Write(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return f.writeErr
	}

	f.values[key] = value
	f.writes = append(f.writes, value)

	return nil
}

func (*fakeCheckpoints) Close() error {
	return nil
}

func (f *fakeCheckpoints) value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, found := f.values[key]

	return value, found
}

func (f *fakeCheckpoints) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.writes)
}

// cannedPages builds a fetch function serving the given pages in order,
// optionally failing with err instead of serving page errOn (1-based).
func cannedPages(pages [][]json.RawMessage, errOn int, err error) sophos.FetchPageFunc {
	call := 0

	return func(_ context.Context, _ string, _ int) (*sophos.Page, error) {
		call++

		if errOn != 0 && call == errOn {
			return nil, err
		}

		if call > len(pages) {
			return &sophos.Page{}, nil
		}

		page := &sophos.Page{Items: pages[call-1]}
		if call < len(pages) || (errOn != 0 && errOn > call) {
			page.NextKey = "next"
		}

		return page, nil
	}
}

type engineMocks struct {
	api    *MockPagerSource
	tokens *MockTokenProvider
	store  *MockRecordStore
}

func newTestEngine(t *testing.T, checkpoints *fakeCheckpoints, config Config) (*Engine, engineMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mocks := engineMocks{
		api:    NewMockPagerSource(ctrl),
		tokens: NewMockTokenProvider(ctrl),
		store:  NewMockRecordStore(ctrl),
	}

	engine := NewEngine(mocks.api, mocks.tokens, mocks.store, checkpoints, config, zerolog.Nop())

	return engine, mocks
}
