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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/helmguard/centralsync/pkg/ingest"
	"github.com/helmguard/centralsync/pkg/logger"
	"github.com/helmguard/centralsync/pkg/models"
	"github.com/helmguard/centralsync/pkg/sophos"
)

const (
	defaultEndpointSyncInterval = 15 * time.Minute
	defaultEventSyncInterval    = 60 * time.Minute

	defaultCheckpointDir    = "/var/lib/centralsync/checkpoints"
	defaultCheckpointBucket = "centralsync-checkpoints"

	checkpointBackendFile = "file"
	checkpointBackendNATS = "nats"
)

var (
	errMissingTenant      = errors.New("sophos tenant_id is required")
	errMissingCredentials = errors.New("sophos client_id and client_secret are required")
	errMissingDatabaseURL = errors.New("database_url is required")
	errMissingNATSURL     = errors.New("checkpoint nats_url is required for the nats backend")
	errBadCheckpointStore = errors.New("checkpoint backend must be 'file' or 'nats'")
)

// JobConfig configures one periodic sync job.
type JobConfig struct {
	Disabled bool            `json:"disabled"`
	Interval models.Duration `json:"interval"`
}

// CheckpointConfig selects and configures the checkpoint backing store.
type CheckpointConfig struct {
	Backend string `json:"backend"` // file (default) or nats
	Dir     string `json:"dir"`
	NATSURL string `json:"nats_url"`
	Bucket  string `json:"bucket"`
}

// Config is the collector service configuration.
type Config struct {
	Sophos       sophos.Config    `json:"sophos"`
	DatabaseURL  string           `json:"database_url"`
	Checkpoint   CheckpointConfig `json:"checkpoint"`
	Ingest       ingest.Config    `json:"ingest"`
	EndpointSync JobConfig        `json:"endpoint_sync"`
	EventSync    JobConfig        `json:"event_sync"`
	Logging      logger.Config    `json:"logging"`
}

// Validate applies environment overrides and defaults, then checks the
// required fields.
func (c *Config) Validate() error {
	c.applyEnvOverrides()

	if c.Sophos.TenantID == "" {
		return errMissingTenant
	}

	if c.Sophos.ClientID == "" || c.Sophos.ClientSecret == "" {
		return errMissingCredentials
	}

	if c.DatabaseURL == "" {
		return errMissingDatabaseURL
	}

	if time.Duration(c.EndpointSync.Interval) == 0 {
		c.EndpointSync.Interval = models.Duration(defaultEndpointSyncInterval)
	}

	if time.Duration(c.EventSync.Interval) == 0 {
		c.EventSync.Interval = models.Duration(defaultEventSyncInterval)
	}

	switch c.Checkpoint.Backend {
	case "", checkpointBackendFile:
		c.Checkpoint.Backend = checkpointBackendFile

		if c.Checkpoint.Dir == "" {
			c.Checkpoint.Dir = defaultCheckpointDir
		}
	case checkpointBackendNATS:
		if c.Checkpoint.NATSURL == "" {
			return errMissingNATSURL
		}

		if c.Checkpoint.Bucket == "" {
			c.Checkpoint.Bucket = defaultCheckpointBucket
		}
	default:
		return fmt.Errorf("%w: %q", errBadCheckpointStore, c.Checkpoint.Backend)
	}

	return nil
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file, matching how the service is deployed.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SOPHOS_CLIENT_ID"); v != "" {
		c.Sophos.ClientID = v
	}

	if v := os.Getenv("SOPHOS_CLIENT_SECRET"); v != "" {
		c.Sophos.ClientSecret = v
	}

	if v := os.Getenv("SOPHOS_TENANT_ID"); v != "" {
		c.Sophos.TenantID = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
}
