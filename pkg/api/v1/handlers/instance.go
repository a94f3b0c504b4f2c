package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/stratolab/strato/internal/db/models"
	"github.com/stratolab/strato/pkg/api/v1/common"
	"github.com/stratolab/strato/pkg/types"
)

// InstanceHandler handles HTTP requests for instance operations
type InstanceHandler struct {
	service  InstanceService
	maxLimit int
}

// NewInstanceHandler creates a new instance handler instance
func NewInstanceHandler(service InstanceService, maxLimit int) *InstanceHandler {
	return &InstanceHandler{
		service:  service,
		maxLimit: maxLimit,
	}
}

// ListInstances handles the request to list instances. The window is
// selected by marker/limit when a marker is given, by offset/limit
// otherwise.
func (h *InstanceHandler) ListInstances(c *fiber.Ctx) error {
	instances, err := h.service.ListInstances(c.Context())
	if err != nil {
		return serviceError(c, err, "failed to list instances")
	}

	marker := c.Query("marker")
	var page []models.Instance
	if marker != "" {
		page, err = common.LimitedByMarker(instances, marker, c.Query("limit"), h.maxLimit)
	} else {
		page, err = common.Limited(instances, c.Query("offset"), c.Query("limit"), h.maxLimit)
	}
	if err != nil {
		return err
	}

	views, err := instanceViews(page)
	if err != nil {
		return err
	}

	return c.JSON(types.ListResponse[types.InstanceView]{
		Rows: views,
		Pagination: types.PaginationResponse{
			Total:  len(views),
			Limit:  c.QueryInt("limit", 0),
			Offset: c.QueryInt("offset", 0),
			Marker: marker,
		},
	})
}

// GetInstance returns details of a specific instance. The :id parameter
// may be a bare ID or a full href.
func (h *InstanceHandler) GetInstance(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	instance, err := h.service.GetInstance(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to get instance")
	}

	view, err := instanceView(*instance)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// CreateInstance handles the request to create an instance
func (h *InstanceHandler) CreateInstance(c *fiber.Ctx) error {
	var req struct {
		Name     string          `json:"name"`
		Region   string          `json:"region"`
		Size     string          `json:"size"`
		Image    string          `json:"image"`
		Metadata models.Metadata `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return &common.BadRequestError{Message: ErrMsgInvalidReqBody}
	}
	if req.Name == "" {
		return &common.BadRequestError{Message: "instance name is required"}
	}

	instance := &models.Instance{
		Name:     req.Name,
		Region:   req.Region,
		Size:     req.Size,
		Image:    req.Image,
		Metadata: req.Metadata,
	}
	if err := h.service.CreateInstance(c.Context(), instance); err != nil {
		return serviceError(c, err, "failed to create instance")
	}

	view, err := instanceView(*instance)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// DeleteInstance handles the request to delete an instance
func (h *InstanceHandler) DeleteInstance(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteInstance(c.Context(), id); err != nil {
		return serviceError(c, err, "failed to delete instance")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// instanceView derives the user-facing representation of an instance
func instanceView(instance models.Instance) (types.InstanceView, error) {
	status, err := common.StatusFromPowerState(&instance.PowerState)
	if err != nil {
		return types.InstanceView{}, err
	}
	metadata := instance.Metadata
	if metadata == nil {
		metadata = models.Metadata{}
	}
	return types.InstanceView{
		ID:       instance.ID,
		Name:     instance.Name,
		Region:   instance.Region,
		Size:     instance.Size,
		Image:    instance.Image,
		Status:   status,
		Metadata: metadata,
	}, nil
}

func instanceViews(instances []models.Instance) ([]types.InstanceView, error) {
	views := make([]types.InstanceView, 0, len(instances))
	for _, instance := range instances {
		view, err := instanceView(instance)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
