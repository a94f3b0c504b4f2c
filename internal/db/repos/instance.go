// Package repos provides access to database operations
package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stratolab/strato/internal/db/models"
)

// InstanceRepository provides access to instance-related database operations
type InstanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository creates a new instance repository instance
func NewInstanceRepository(db *gorm.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

// Create creates a new instance in the database
func (r *InstanceRepository) Create(ctx context.Context, instance *models.Instance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

// GetByID retrieves an instance by its ID
func (r *InstanceRepository) GetByID(ctx context.Context, id uint) (*models.Instance, error) {
	var instance models.Instance
	err := r.db.WithContext(ctx).
		Where(&models.Instance{Model: gorm.Model{ID: id}}).
		First(&instance).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}
	return &instance, nil
}

// List retrieves all instances ordered by creation time
func (r *InstanceRepository) List(ctx context.Context) ([]models.Instance, error) {
	var instances []models.Instance
	err := r.db.WithContext(ctx).Order("id asc").Find(&instances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return instances, nil
}

// Delete removes an instance
func (r *InstanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&models.Instance{}, id).Error
}

// UpdateMetadata replaces the stored metadata of an instance. An update
// matching no rows reports gorm.ErrRecordNotFound, since gorm treats a
// zero-row UPDATE as success.
func (r *InstanceRepository) UpdateMetadata(ctx context.Context, id uint, metadata models.Metadata) error {
	result := r.db.WithContext(ctx).Model(&models.Instance{}).
		Where(&models.Instance{Model: gorm.Model{ID: id}}).
		Update("metadata", metadata)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
