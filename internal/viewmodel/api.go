// Package viewmodel holds the dashboard's presentation-independent state
// machines: the paginated multi-platform feed and the merged activity
// timeline. Both are constructed with explicit ports to the backend so the
// state logic never reaches for ambient clients.
package viewmodel

import (
	"context"

	"github.com/ushadow-io/feed-service/internal/models"
)

// FetchQuery describes one feed page request.
type FetchQuery struct {
	Page     int
	PageSize int
	Platform models.PlatformType
	Interest string // empty means no interest filter
	ShowSeen bool
}

// PostPage is one fetched slice of the feed plus its pagination truth.
type PostPage struct {
	Posts      []models.Post
	Page       int
	TotalPages int
	TotalItems int
}

// FeedAPI is the port the feed view model drives. Implementations must keep
// FetchPosts idempotent and side-effect-free.
type FeedAPI interface {
	FetchPosts(ctx context.Context, q FetchQuery) (*PostPage, error)
	Refresh(ctx context.Context, platform models.PlatformType) (*models.RefreshStats, error)
	MarkSeen(ctx context.Context, postID string) error
	SetBookmarked(ctx context.Context, postID string, bookmarked bool) error
	ListSources(ctx context.Context) ([]models.Source, error)
	AddSource(ctx context.Context, req models.CreateSourceRequest) (*models.Source, error)
	RemoveSource(ctx context.Context, sourceID string) error
	ListInterests(ctx context.Context) ([]models.Interest, error)
}

// ActivityAPI is the port the dashboard view model drives for the unified
// timeline. The two lists come from separate upstream services.
type ActivityAPI interface {
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	ListMemories(ctx context.Context) ([]models.Memory, error)
}
