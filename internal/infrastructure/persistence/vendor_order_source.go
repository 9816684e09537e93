package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sooqly/backend/internal/domain/shared"
	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/infrastructure/persistence/models"
)

// VendorOrderSource serves canonical projections from the per-vendor order
// schema. It also acts as the fallback lookup for references that have no hub
// record yet.
type VendorOrderSource struct {
	db *gorm.DB
}

// NewVendorOrderSource creates a schema source for the per-vendor tables
func NewVendorOrderSource(db *gorm.DB) *VendorOrderSource {
	return &VendorOrderSource{db: db}
}

var _ tracking.SchemaSource = (*VendorOrderSource)(nil)

// Schema returns the tag this source serves
func (s *VendorOrderSource) Schema() tracking.SourceSchema {
	return tracking.SchemaVendor
}

// FetchProjection loads the record with its line items and maps it into the
// canonical shape
func (s *VendorOrderSource) FetchProjection(ctx context.Context, recordID uuid.UUID) (*tracking.CanonicalOrder, error) {
	var model models.VendorOrderModel
	if err := s.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain().Project(), nil
}
