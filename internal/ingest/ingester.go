// Package ingest pulls fresh posts from the configured sources of a platform
// and lands them in the post store, tagged against the interest vocabulary.
package ingest

import (
	"context"

	"github.com/ushadow-io/feed-service/internal/models"
)

// Ingester fetches the current items of one source on one platform.
type Ingester interface {
	Platform() models.PlatformType
	Fetch(ctx context.Context, source models.Source) ([]models.Post, error)
}
