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

// StorefrontOrderSource serves canonical projections from the legacy
// storefront order schema.
type StorefrontOrderSource struct {
	db *gorm.DB
}

// NewStorefrontOrderSource creates a schema source for the legacy storefront tables
func NewStorefrontOrderSource(db *gorm.DB) *StorefrontOrderSource {
	return &StorefrontOrderSource{db: db}
}

var _ tracking.SchemaSource = (*StorefrontOrderSource)(nil)

// Schema returns the tag this source serves
func (s *StorefrontOrderSource) Schema() tracking.SourceSchema {
	return tracking.SchemaStorefront
}

// FetchProjection loads the record with its line items and maps it into the
// canonical shape
func (s *StorefrontOrderSource) FetchProjection(ctx context.Context, recordID uuid.UUID) (*tracking.CanonicalOrder, error) {
	var model models.StorefrontOrderModel
	if err := s.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain().Project(), nil
}
