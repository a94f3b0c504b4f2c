// Package quota supplies the quota functions consumed by the API layer
package quota

import (
	"context"

	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/pkg/api/v1/common"
)

// AllowedMetadataItems returns a QuotaFunc granting at most the
// configured per-instance metadata item quota.
func AllowedMetadataItems(cfg *config.Config) common.QuotaFunc {
	return func(_ context.Context, requested int) int {
		return min(requested, cfg.QuotaMetadataItems)
	}
}
