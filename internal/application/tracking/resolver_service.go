package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sooqly/backend/internal/domain/shared"
	"github.com/sooqly/backend/internal/domain/tracking"
)

// ResolutionError is a storage-layer fault during identity resolution. It is
// retryable by the caller and distinct from a missing order.
type ResolutionError struct {
	cause error
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("order resolution failed: %v", e.cause)
}

// Unwrap returns the underlying storage error
func (e *ResolutionError) Unwrap() error {
	return e.cause
}

// ResolverService reconciles an opaque order reference into the canonical
// order projection, regardless of which backing schema holds the record.
type ResolverService struct {
	hubs     tracking.HubRepository
	sources  map[tracking.SourceSchema]tracking.SchemaSource
	fallback tracking.SchemaSource
	logger   *zap.Logger
}

// NewResolverService creates a resolver over the hub repository and the
// registered schema sources. The vendor source doubles as the direct-lookup
// fallback for references that have no hub record (legacy behavior: only the
// newer schema is consulted).
func NewResolverService(hubs tracking.HubRepository, logger *zap.Logger, sources ...tracking.SchemaSource) *ResolverService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ResolverService{
		hubs:    hubs,
		sources: make(map[tracking.SourceSchema]tracking.SchemaSource, len(sources)),
		logger:  logger,
	}
	for _, source := range sources {
		s.sources[source.Schema()] = source
		if source.Schema() == tracking.SchemaVendor {
			s.fallback = source
		}
	}
	return s
}

// Resolve determines which backing schema holds the authoritative record for
// the reference and returns the canonical projection.
//
// The reference is tried first as the hub aggregate primary key, then as the
// hub's pointer-to-source field. On a hub hit, the schema-specific record is
// fetched by schema-tag dispatch; if that fetch misses or fails, the
// aggregate-only projection is returned (degraded but non-fatal) because the
// hub always carries enough fields to render a usable page. With no hub at
// all, the reference is looked up directly in the vendor schema only; a miss
// there is shared.ErrOrderNotFound.
func (s *ResolverService) Resolve(ctx context.Context, reference string) (*tracking.CanonicalOrder, error) {
	id, err := uuid.Parse(reference)
	if err != nil {
		return nil, shared.ErrOrderNotFound
	}

	hub, err := s.findHub(ctx, id)
	if err != nil {
		return nil, err
	}

	if hub != nil {
		return s.projectFromHub(ctx, hub), nil
	}

	if s.fallback == nil {
		return nil, shared.ErrOrderNotFound
	}
	order, err := s.fallback.FetchProjection(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrOrderNotFound) {
			return nil, shared.ErrOrderNotFound
		}
		return nil, &ResolutionError{cause: err}
	}
	return order, nil
}

// findHub tries the reference as hub primary key, then as pointer-to-source.
func (s *ResolverService) findHub(ctx context.Context, id uuid.UUID) (*tracking.OrderHub, error) {
	hub, err := s.hubs.FindByID(ctx, id)
	if err == nil {
		return hub, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, &ResolutionError{cause: err}
	}

	hub, err = s.hubs.FindBySourceRecordID(ctx, id)
	if err == nil {
		return hub, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, &ResolutionError{cause: err}
	}
	return nil, nil
}

// projectFromHub merges the schema-specific record into the hub projection,
// degrading to the aggregate-only view when the schema record is unavailable.
func (s *ResolverService) projectFromHub(ctx context.Context, hub *tracking.OrderHub) *tracking.CanonicalOrder {
	source, ok := s.sources[hub.SourceSchema]
	if !ok {
		s.logger.Warn("no source registered for schema tag, serving aggregate-only projection",
			zap.String("schema", hub.SourceSchema.String()),
			zap.String("order_id", hub.ID.String()))
		return hub.Project()
	}

	record, err := source.FetchProjection(ctx, hub.SourceRecordID)
	if err != nil {
		s.logger.Warn("schema record fetch failed, serving aggregate-only projection",
			zap.String("schema", hub.SourceSchema.String()),
			zap.String("order_id", hub.ID.String()),
			zap.Error(err))
		return hub.Project()
	}
	return hub.Merge(record)
}
