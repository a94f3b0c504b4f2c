package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stratolab/strato/internal/db/models"
)

// SnapshotRepository provides access to snapshot-related database operations
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository instance
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create creates a new snapshot in the database
func (r *SnapshotRepository) Create(ctx context.Context, snapshot *models.Snapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// ListByInstance retrieves all snapshots of an instance
func (r *SnapshotRepository) ListByInstance(ctx context.Context, instanceID uint) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := r.db.WithContext(ctx).
		Where(&models.Snapshot{InstanceID: instanceID}).
		Order("id asc").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}
