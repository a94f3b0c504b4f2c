package common

import (
	"context"

	"github.com/stratolab/strato/internal/db/models"
)

// QuotaFunc reports how many metadata items a request may carry, given
// the number it asked for. The quota subsystem supplies it.
type QuotaFunc func(ctx context.Context, requested int) int

// CheckMetadataQuota verifies a metadata mapping against the quota. A
// nil mapping is a no-op. When the permitted count is below the actual
// count the request is rejected with a QuotaExceededError carrying a
// Retry-After hint of 0.
func CheckMetadataQuota(ctx context.Context, metadata models.Metadata, allowed QuotaFunc) error {
	if metadata == nil {
		return nil
	}
	requested := len(metadata)
	if allowed(ctx, requested) < requested {
		return &QuotaExceededError{
			Message:    "Metadata limit exceeded",
			RetryAfter: 0,
		}
	}
	return nil
}
