// Package handlers provides HTTP request handling
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/stratolab/strato/pkg/api/v1/common"
	"github.com/stratolab/strato/pkg/types"
)

// Common error messages
const (
	ErrMsgInstanceIDPositive = "instance id must be positive"
	ErrMsgInstanceNotFound   = "instance not found"
	ErrMsgMetadataNotFound   = "metadata item not found"
	ErrMsgBodyTooManyItems   = "request body contains too many items"
	ErrMsgBodyKeyMismatch    = "request body and URI mismatch"
	ErrMsgInvalidReqBody     = "invalid request body"
)

// ErrorHandler is the Fiber error handler for the API. It translates
// the typed request errors raised by the common helpers into status
// codes: validation failures map to 400 and quota failures to 413 with
// a Retry-After header.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		badRequest *common.BadRequestError
		quotaErr   *common.QuotaExceededError
		malformed  *common.MalformedXMLError
		badState   *common.UnknownPowerStateError
		badHref    *common.InvalidHrefError
		noVersion  *common.NoVersionInHrefError
	)

	switch {
	case errors.As(err, &quotaErr):
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(quotaErr.RetryAfter))
		return c.Status(fiber.StatusRequestEntityTooLarge).
			JSON(types.ErrorResponse{Error: quotaErr.Message})
	case errors.As(err, &badRequest),
		errors.As(err, &malformed),
		errors.As(err, &badState),
		errors.As(err, &badHref),
		errors.As(err, &noVersion):
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrorResponse{Error: err.Error()})
	}

	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(types.ErrorResponse{Error: err.Error()})
}

// serviceError translates service-layer failures into a response:
// missing records become a 404, anything else a 500.
func serviceError(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrorResponse{Error: ErrMsgInstanceNotFound})
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(types.ErrorResponse{Error: fmt.Sprintf("%s: %v", msg, err)})
}
