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

package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmguard/centralsync/pkg/config"
	"github.com/helmguard/centralsync/pkg/models"
	"github.com/helmguard/centralsync/pkg/sophos"
)

func validConfig() Config {
	return Config{
		Sophos: sophos.Config{
			TenantID:     "tenant-1",
			ClientID:     "client-1",
			ClientSecret: "secret-1",
		},
		DatabaseURL: "postgres://localhost/centralsync",
	}
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()

	for _, key := range []string{"SOPHOS_CLIENT_ID", "SOPHOS_CLIENT_SECRET", "SOPHOS_TENANT_ID", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	clearEnvOverrides(t)

	t.Run("applies defaults", func(t *testing.T) {
		cfg := validConfig()

		require.NoError(t, cfg.Validate())

		assert.Equal(t, 15*time.Minute, time.Duration(cfg.EndpointSync.Interval))
		assert.Equal(t, time.Hour, time.Duration(cfg.EventSync.Interval))
		assert.Equal(t, checkpointBackendFile, cfg.Checkpoint.Backend)
		assert.Equal(t, defaultCheckpointDir, cfg.Checkpoint.Dir)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := validConfig()
		cfg.EndpointSync.Interval = models.Duration(5 * time.Minute)
		cfg.Checkpoint.Dir = "/tmp/checkpoints"

		require.NoError(t, cfg.Validate())

		assert.Equal(t, 5*time.Minute, time.Duration(cfg.EndpointSync.Interval))
		assert.Equal(t, "/tmp/checkpoints", cfg.Checkpoint.Dir)
	})

	t.Run("missing tenant", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sophos.TenantID = ""

		require.ErrorIs(t, cfg.Validate(), errMissingTenant)
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sophos.ClientSecret = ""

		require.ErrorIs(t, cfg.Validate(), errMissingCredentials)
	})

	t.Run("missing database url", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseURL = ""

		require.ErrorIs(t, cfg.Validate(), errMissingDatabaseURL)
	})

	t.Run("nats backend requires url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Checkpoint.Backend = checkpointBackendNATS

		require.ErrorIs(t, cfg.Validate(), errMissingNATSURL)
	})

	t.Run("nats backend defaults the bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Checkpoint.Backend = checkpointBackendNATS
		cfg.Checkpoint.NATSURL = "nats://localhost:4222"

		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultCheckpointBucket, cfg.Checkpoint.Bucket)
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Checkpoint.Backend = "redis"

		require.ErrorIs(t, cfg.Validate(), errBadCheckpointStore)
	})
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SOPHOS_CLIENT_ID", "env-client")
	t.Setenv("SOPHOS_CLIENT_SECRET", "env-secret")
	t.Setenv("SOPHOS_TENANT_ID", "env-tenant")
	t.Setenv("DATABASE_URL", "postgres://env/centralsync")

	cfg := Config{}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "env-client", cfg.Sophos.ClientID)
	assert.Equal(t, "env-secret", cfg.Sophos.ClientSecret)
	assert.Equal(t, "env-tenant", cfg.Sophos.TenantID)
	assert.Equal(t, "postgres://env/centralsync", cfg.DatabaseURL)
}

func TestConfig_LoadFromFile(t *testing.T) {
	clearEnvOverrides(t)

	raw := `{
		"sophos": {
			"tenant_id": "tenant-1",
			"client_id": "client-1",
			"client_secret": "secret-1",
			"event_type_filter": "Event::Endpoint::Threat::Detected"
		},
		"database_url": "postgres://localhost/centralsync",
		"checkpoint": {"backend": "file", "dir": "/tmp/checkpoints"},
		"ingest": {"event_page_size": 100, "max_events": 2000},
		"endpoint_sync": {"interval": "10m"},
		"event_sync": {"disabled": true},
		"logging": {"level": "debug"}
	}`

	path := filepath.Join(t.TempDir(), "collector.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	var cfg Config

	loader := config.NewConfig()
	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "tenant-1", cfg.Sophos.TenantID)
	assert.Equal(t, "Event::Endpoint::Threat::Detected", cfg.Sophos.EventTypeFilter)
	assert.Equal(t, 10*time.Minute, time.Duration(cfg.EndpointSync.Interval))
	assert.True(t, cfg.EventSync.Disabled)
	assert.Equal(t, time.Hour, time.Duration(cfg.EventSync.Interval))
	assert.Equal(t, 100, cfg.Ingest.EventPageSize)
	assert.Equal(t, 2000, cfg.Ingest.MaxEvents)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
