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

// GormOrderHubRepository implements tracking.HubRepository using GORM
type GormOrderHubRepository struct {
	db *gorm.DB
}

// NewGormOrderHubRepository creates a new GORM hub repository
func NewGormOrderHubRepository(db *gorm.DB) *GormOrderHubRepository {
	return &GormOrderHubRepository{db: db}
}

var _ tracking.HubRepository = (*GormOrderHubRepository)(nil)

// FindByID finds a hub record by its primary key
func (r *GormOrderHubRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.OrderHub, error) {
	var model models.OrderHubModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySourceRecordID finds a hub record by its pointer-to-source field
func (r *GormOrderHubRepository) FindBySourceRecordID(ctx context.Context, sourceRecordID uuid.UUID) (*tracking.OrderHub, error) {
	var model models.OrderHubModel
	if err := r.db.WithContext(ctx).First(&model, "source_record_id = ?", sourceRecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
