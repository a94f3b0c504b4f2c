// Package services provides business logic implementation for the API
package services

import (
	"context"
	"fmt"

	"github.com/stratolab/strato/internal/db/models"
	"github.com/stratolab/strato/internal/db/repos"
)

// Instance provides business logic for instance operations
type Instance struct {
	repo *repos.InstanceRepository
}

// NewInstanceService creates a new instance service instance
func NewInstanceService(repo *repos.InstanceRepository) *Instance {
	return &Instance{repo: repo}
}

// ListInstances retrieves all instances; pagination happens at the API layer
func (s *Instance) ListInstances(ctx context.Context) ([]models.Instance, error) {
	return s.repo.List(ctx)
}

// GetInstance retrieves an instance by its ID
func (s *Instance) GetInstance(ctx context.Context, id uint) (*models.Instance, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateInstance creates a new instance
func (s *Instance) CreateInstance(ctx context.Context, instance *models.Instance) error {
	if instance.Name == "" {
		return fmt.Errorf("instance name is required")
	}
	if instance.Metadata == nil {
		instance.Metadata = models.Metadata{}
	}
	return s.repo.Create(ctx, instance)
}

// DeleteInstance removes an instance
func (s *Instance) DeleteInstance(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// GetMetadata returns the metadata mapping of an instance
func (s *Instance) GetMetadata(ctx context.Context, id uint) (models.Metadata, error) {
	instance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if instance.Metadata == nil {
		return models.Metadata{}, nil
	}
	return instance.Metadata, nil
}

// ReplaceMetadata overwrites the full metadata mapping of an instance
func (s *Instance) ReplaceMetadata(ctx context.Context, id uint, metadata models.Metadata) (models.Metadata, error) {
	if metadata == nil {
		metadata = models.Metadata{}
	}
	if err := s.repo.UpdateMetadata(ctx, id, metadata); err != nil {
		return nil, fmt.Errorf("failed to replace metadata: %w", err)
	}
	return metadata, nil
}

// DeleteMetadataItem removes a single metadata key from an instance
func (s *Instance) DeleteMetadataItem(ctx context.Context, id uint, key string) error {
	current, err := s.GetMetadata(ctx, id)
	if err != nil {
		return err
	}
	delete(current, key)
	return s.repo.UpdateMetadata(ctx, id, current)
}
