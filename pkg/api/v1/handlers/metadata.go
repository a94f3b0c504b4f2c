package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/stratolab/strato/internal/db/models"
	"github.com/stratolab/strato/pkg/api/v1/common"
	"github.com/stratolab/strato/pkg/types"
)

// MetadataHandler handles HTTP requests for the instance metadata
// sub-resource. Bodies are XML (the metadata/meta schema) when the
// request says so and JSON otherwise.
type MetadataHandler struct {
	service InstanceService
	codec   common.MetadataXMLCodec
	allowed common.QuotaFunc
}

// NewMetadataHandler creates a new metadata handler instance
func NewMetadataHandler(service InstanceService, allowed common.QuotaFunc) *MetadataHandler {
	return &MetadataHandler{
		service: service,
		codec:   common.NewMetadataXMLCodec(),
		allowed: allowed,
	}
}

// ListMetadata returns the full metadata mapping of an instance
func (h *MetadataHandler) ListMetadata(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	metadata, err := h.service.GetMetadata(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to get metadata")
	}
	return h.respondContainer(c, metadata)
}

// CreateMetadata merges new entries into the metadata of an instance
func (h *MetadataHandler) CreateMetadata(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	incoming, err := h.decodeContainer(c)
	if err != nil {
		return err
	}

	current, err := h.service.GetMetadata(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to get metadata")
	}
	merged := make(models.Metadata, len(current)+len(incoming))
	for key, value := range current {
		merged[key] = value
	}
	for key, value := range incoming {
		merged[key] = value
	}

	if err := common.CheckMetadataQuota(c.Context(), merged, h.allowed); err != nil {
		return err
	}

	metadata, err := h.service.ReplaceMetadata(c.Context(), id, merged)
	if err != nil {
		return serviceError(c, err, "failed to update metadata")
	}
	return h.respondContainer(c, metadata)
}

// ReplaceMetadata replaces the full metadata mapping of an instance
func (h *MetadataHandler) ReplaceMetadata(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	incoming, err := h.decodeContainer(c)
	if err != nil {
		return err
	}

	if err := common.CheckMetadataQuota(c.Context(), incoming, h.allowed); err != nil {
		return err
	}

	metadata, err := h.service.ReplaceMetadata(c.Context(), id, incoming)
	if err != nil {
		return serviceError(c, err, "failed to replace metadata")
	}
	return h.respondContainer(c, metadata)
}

// GetMetadataItem returns a single metadata entry
func (h *MetadataHandler) GetMetadataItem(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}
	key := c.Params("key")

	metadata, err := h.service.GetMetadata(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to get metadata")
	}

	value, ok := metadata[key]
	if !ok {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrorResponse{Error: ErrMsgMetadataNotFound})
	}
	return h.respondItem(c, key, value)
}

// UpdateMetadataItem sets a single metadata entry. The body must carry
// exactly the entry addressed by the URI.
func (h *MetadataHandler) UpdateMetadataItem(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}
	key := c.Params("key")

	item, err := h.decodeItem(c)
	if err != nil {
		return err
	}
	if len(item) > 1 {
		return &common.BadRequestError{Message: ErrMsgBodyTooManyItems}
	}
	value, ok := item[key]
	if !ok {
		return &common.BadRequestError{Message: ErrMsgBodyKeyMismatch}
	}

	current, err := h.service.GetMetadata(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to get metadata")
	}
	current[key] = value

	if err := common.CheckMetadataQuota(c.Context(), current, h.allowed); err != nil {
		return err
	}

	if _, err := h.service.ReplaceMetadata(c.Context(), id, current); err != nil {
		return serviceError(c, err, "failed to update metadata")
	}
	return h.respondItem(c, key, value)
}

// DeleteMetadataItem removes a single metadata entry
func (h *MetadataHandler) DeleteMetadataItem(c *fiber.Ctx) error {
	id, err := instanceID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteMetadataItem(c.Context(), id, c.Params("key")); err != nil {
		return serviceError(c, err, "failed to delete metadata")
	}

	c.Status(fiber.StatusNoContent)
	return c.SendString(h.codec.EncodeNone())
}

// decodeContainer reads a metadata mapping from the request body
func (h *MetadataHandler) decodeContainer(c *fiber.Ctx) (models.Metadata, error) {
	if isXMLRequest(c) {
		return h.codec.DecodeContainer(c.Body())
	}

	var body struct {
		Metadata models.Metadata `json:"metadata"`
	}
	if err := c.BodyParser(&body); err != nil {
		return nil, &common.BadRequestError{Message: ErrMsgInvalidReqBody}
	}
	if body.Metadata == nil {
		return models.Metadata{}, nil
	}
	return body.Metadata, nil
}

// decodeItem reads a single-entry mapping from the request body
func (h *MetadataHandler) decodeItem(c *fiber.Ctx) (models.Metadata, error) {
	if isXMLRequest(c) {
		return h.codec.DecodeItem(c.Body())
	}

	var body struct {
		Meta models.Metadata `json:"meta"`
	}
	if err := c.BodyParser(&body); err != nil {
		return nil, &common.BadRequestError{Message: ErrMsgInvalidReqBody}
	}
	if body.Meta == nil {
		return models.Metadata{}, nil
	}
	return body.Meta, nil
}

func (h *MetadataHandler) respondContainer(c *fiber.Ctx, metadata models.Metadata) error {
	if acceptsXML(c) {
		body, err := h.codec.EncodeContainer(metadata)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
		return c.SendString(body)
	}
	return c.JSON(fiber.Map{"metadata": metadata})
}

func (h *MetadataHandler) respondItem(c *fiber.Ctx, key, value string) error {
	if acceptsXML(c) {
		body, err := h.codec.EncodeItem(key, value)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
		return c.SendString(body)
	}
	return c.JSON(fiber.Map{"meta": models.Metadata{key: value}})
}
