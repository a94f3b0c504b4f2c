package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stratolab/strato/internal/db/models"
	"github.com/stratolab/strato/internal/db/repos"
	"github.com/stratolab/strato/internal/logger"
)

// Snapshot provides business logic for snapshot operations
type Snapshot struct {
	repo         *repos.SnapshotRepository
	instanceRepo *repos.InstanceRepository
}

// NewSnapshotService creates a new snapshot service instance
func NewSnapshotService(repo *repos.SnapshotRepository, instanceRepo *repos.InstanceRepository) *Snapshot {
	return &Snapshot{repo: repo, instanceRepo: instanceRepo}
}

// CreateSnapshot records a new pending snapshot of an instance. When no
// name is given one is generated.
func (s *Snapshot) CreateSnapshot(ctx context.Context, instanceID uint, name string) (*models.Snapshot, error) {
	instance, err := s.instanceRepo.GetByID(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}

	if name == "" {
		name = fmt.Sprintf("%s-%s", instance.Name, uuid.New().String())
	}

	snapshot := &models.Snapshot{
		InstanceID: instance.ID,
		Name:       name,
		Status:     models.SnapshotStatusPending,
	}
	if err := s.repo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	logger.InfoWithFields("Snapshot created", map[string]interface{}{
		"instance_id": instance.ID,
		"snapshot":    snapshot.Name,
	})
	return snapshot, nil
}

// ListSnapshots retrieves all snapshots of an instance
func (s *Snapshot) ListSnapshots(ctx context.Context, instanceID uint) ([]models.Snapshot, error) {
	return s.repo.ListByInstance(ctx, instanceID)
}
