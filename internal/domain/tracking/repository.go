package tracking

import (
	"context"

	"github.com/google/uuid"
)

// HubRepository reads the cross-schema hub aggregate. All reads are
// read-only; this subsystem never writes order data.
type HubRepository interface {
	// FindByID finds a hub record by its primary key
	FindByID(ctx context.Context, id uuid.UUID) (*OrderHub, error)
	// FindBySourceRecordID finds a hub record by its pointer-to-source field
	FindBySourceRecordID(ctx context.Context, sourceRecordID uuid.UUID) (*OrderHub, error)
}

// SchemaSource fetches the canonical projection of a record in one backing
// schema. The resolver dispatches on the hub's schema tag through a table of
// these, one per schema, so adding a third schema is a registration, not a
// rewrite.
type SchemaSource interface {
	// Schema returns the tag this source serves
	Schema() SourceSchema
	// FetchProjection loads the record and maps it into the canonical shape
	FetchProjection(ctx context.Context, recordID uuid.UUID) (*CanonicalOrder, error)
}

// CarrierClient issues one tracking lookup against the external carrier API.
type CarrierClient interface {
	// Fetch posts one tracking request and parses the response. Failures come
	// back as *CarrierAPIError or *CarrierLogicalError; a report with zero
	// shipments is a valid non-error outcome.
	Fetch(ctx context.Context, orderID uuid.UUID, orderNumber, trackingNumber string) (*CarrierReport, error)
}
