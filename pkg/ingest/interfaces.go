package ingest

import (
	"context"

	"github.com/helmguard/centralsync/pkg/models"
	"github.com/helmguard/centralsync/pkg/sophos"
)

//go:generate mockgen -source=interfaces.go -destination=mock_ingest.go -package=ingest

// RecordStore persists fetched records. Both operations must be atomic per
// record; no transaction spanning a page is assumed, so a cycle that fails
// mid-page leaves earlier records stored.
type RecordStore interface {
	// UpsertEndpoint inserts the endpoint or overwrites all mutable fields
	// of an existing record with the same endpoint ID.
	UpsertEndpoint(ctx context.Context, endpoint *models.Endpoint) error
	// InsertEvent stores the event only if its event ID is unseen; an
	// existing record is left untouched.
	InsertEvent(ctx context.Context, event *models.SIEMEvent) error
}

// TokenProvider supplies bearer tokens and supports cache invalidation after
// an authorization failure.
type TokenProvider interface {
	GetAccessToken(ctx context.Context) (string, error)
	InvalidateToken()
}

// PagerSource builds cycle-scoped pagers over the remote collections.
type PagerSource interface {
	EndpointPager(token string, pageSize, itemCap int) *sophos.Pager
	EventPager(token, since string, pageSize, itemCap int) *sophos.Pager
	IPAddressField() string
}
