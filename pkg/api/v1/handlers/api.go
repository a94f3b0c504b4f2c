package handlers

import (
	"context"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/internal/db/models"
	"github.com/stratolab/strato/pkg/api/v1/common"
)

// InstanceService is the service surface the instance and metadata
// handlers depend on.
type InstanceService interface {
	ListInstances(ctx context.Context) ([]models.Instance, error)
	GetInstance(ctx context.Context, id uint) (*models.Instance, error)
	CreateInstance(ctx context.Context, instance *models.Instance) error
	DeleteInstance(ctx context.Context, id uint) error
	GetMetadata(ctx context.Context, id uint) (models.Metadata, error)
	ReplaceMetadata(ctx context.Context, id uint, metadata models.Metadata) (models.Metadata, error)
	DeleteMetadataItem(ctx context.Context, id uint, key string) error
}

// SnapshotService is the service surface the snapshot handler depends on.
type SnapshotService interface {
	CreateSnapshot(ctx context.Context, instanceID uint, name string) (*models.Snapshot, error)
	ListSnapshots(ctx context.Context, instanceID uint) ([]models.Snapshot, error)
}

// APIHandler groups the v1 handlers
type APIHandler struct {
	Instance *InstanceHandler
	Metadata *MetadataHandler
	Snapshot *SnapshotHandler
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(cfg *config.Config, instances InstanceService, snapshots SnapshotService, allowed common.QuotaFunc) *APIHandler {
	return &APIHandler{
		Instance: NewInstanceHandler(instances, cfg.OSAPIMaxLimit),
		Metadata: NewMetadataHandler(instances, allowed),
		Snapshot: NewSnapshotHandler(snapshots, cfg),
	}
}

// instanceID extracts the instance ID from the :id route parameter,
// which may be a bare integer or an href carrying a trailing ID.
func instanceID(c *fiber.Ctx) (uint, error) {
	id, err := common.IDFromHref(c.Params("id"))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, &common.BadRequestError{Message: ErrMsgInstanceIDPositive}
	}
	return uint(id), nil
}

// isXMLRequest reports whether the request body should be decoded as XML
func isXMLRequest(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderContentType), "xml")
}

// acceptsXML reports whether the client prefers an XML response
func acceptsXML(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMEApplicationXML) == fiber.MIMEApplicationXML
}
