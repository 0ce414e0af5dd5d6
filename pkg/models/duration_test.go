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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var d Duration

		require.NoError(t, json.Unmarshal([]byte(`"15m"`), &d))
		assert.Equal(t, 15*time.Minute, time.Duration(d))
	})

	t.Run("numeric nanoseconds", func(t *testing.T) {
		var d Duration

		require.NoError(t, json.Unmarshal([]byte(`60000000000`), &d))
		assert.Equal(t, time.Minute, time.Duration(d))
	})

	t.Run("invalid string", func(t *testing.T) {
		var d Duration

		require.Error(t, json.Unmarshal([]byte(`"fortnight"`), &d))
	})

	t.Run("invalid type", func(t *testing.T) {
		var d Duration

		require.Error(t, json.Unmarshal([]byte(`true`), &d))
	})
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
