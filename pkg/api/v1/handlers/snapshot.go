package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/pkg/api/v1/common"
	"github.com/stratolab/strato/pkg/types"
)

// SnapshotHandler handles HTTP requests for snapshot operations
type SnapshotHandler struct {
	service SnapshotService
	cfg     *config.Config
}

// NewSnapshotHandler creates a new snapshot handler instance
func NewSnapshotHandler(service SnapshotService, cfg *config.Config) *SnapshotHandler {
	return &SnapshotHandler{
		service: service,
		cfg:     cfg,
	}
}

// CreateSnapshotHandler returns the snapshot creation handler wrapped
// in the feature guard on the snapshot flag.
func (h *SnapshotHandler) CreateSnapshotHandler() fiber.Handler {
	return common.RequireFeature("snapshot",
		func() bool { return h.cfg.AllowInstanceSnapshots },
		h.createSnapshot,
	)
}

func (h *SnapshotHandler) createSnapshot(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return &common.BadRequestError{Message: ErrMsgInvalidReqBody}
		}
	}

	snapshot, err := h.service.CreateSnapshot(c.Context(), id, req.Name)
	if err != nil {
		return serviceError(c, err, "failed to create snapshot")
	}

	return c.Status(fiber.StatusCreated).JSON(types.SnapshotResponse{
		ID:     snapshot.ID,
		Name:   snapshot.Name,
		Status: snapshot.Status.String(),
	})
}

// ListSnapshots returns the snapshots of an instance. Listing is not
// gated on the snapshot flag so existing snapshots stay visible after
// the feature is turned off.
func (h *SnapshotHandler) ListSnapshots(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	snapshots, err := h.service.ListSnapshots(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to list snapshots")
	}

	views := make([]types.SnapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		views = append(views, types.SnapshotResponse{
			ID:     snapshot.ID,
			Name:   snapshot.Name,
			Status: snapshot.Status.String(),
		})
	}
	return c.JSON(fiber.Map{"snapshots": views})
}
