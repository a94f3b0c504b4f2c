package common

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/stratolab/strato/internal/logger"
)

// ErrMsgFeatureNotPermitted is returned when a gated endpoint is hit
// while its feature flag is off.
const ErrMsgFeatureNotPermitted = "feature not permitted at this time"

// RequireFeature wraps a handler and rejects the request with a
// BadRequestError when enabled reports false. The flag is consulted on
// every call, immediately before the wrapped handler runs, so flag
// changes take effect without re-wiring routes. Guards compose by
// plain nesting.
func RequireFeature(name string, enabled func() bool, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled() {
			logger.Warnf("Rejecting %s request, %s currently disabled", name, name)
			return &BadRequestError{Message: ErrMsgFeatureNotPermitted}
		}
		return handler(c)
	}
}
