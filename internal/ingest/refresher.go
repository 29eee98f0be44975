package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
)

// MaxConcurrentFetches bounds parallel source fetches within one refresh.
const MaxConcurrentFetches = 4

// ErrNoSources is returned when the platform has no configured sources.
var ErrNoSources = errors.New("no sources configured for platform")

// ErrRefreshInProgress is returned when a refresh for the same platform is
// already running. Refreshes are treated as single blocking calls, not
// queued.
var ErrRefreshInProgress = errors.New("refresh already in progress for platform")

// Refresher runs platform-scoped ingestion: it fans out across the
// platform's sources, dedupes on upsert and tags new posts against the
// interest vocabulary. A refresh never touches any other platform.
type Refresher struct {
	sources   repositories.SourceRepository
	posts     repositories.PostRepository
	interests repositories.InterestRepository
	ingesters map[models.PlatformType]Ingester

	mu       sync.Mutex
	inFlight map[models.PlatformType]bool
}

// NewRefresher creates a Refresher over the given ingesters.
func NewRefresher(
	sourceRepo repositories.SourceRepository,
	postRepo repositories.PostRepository,
	interestRepo repositories.InterestRepository,
	ingesters ...Ingester,
) *Refresher {
	byPlatform := make(map[models.PlatformType]Ingester, len(ingesters))
	for _, ing := range ingesters {
		byPlatform[ing.Platform()] = ing
	}
	return &Refresher{
		sources:   sourceRepo,
		posts:     postRepo,
		interests: interestRepo,
		ingesters: byPlatform,
		inFlight:  make(map[models.PlatformType]bool),
	}
}

// Refresh ingests fresh posts for every source of the given platform.
// Failure of one source is logged and skipped; the remaining sources' items
// are still stored.
func (r *Refresher) Refresh(ctx context.Context, platform models.PlatformType) (*models.RefreshStats, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("unknown platform type: %q", platform)
	}

	ingester, ok := r.ingesters[platform]
	if !ok {
		return nil, fmt.Errorf("no ingester registered for platform %q", platform)
	}

	r.mu.Lock()
	if r.inFlight[platform] {
		r.mu.Unlock()
		return nil, ErrRefreshInProgress
	}
	r.inFlight[platform] = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.inFlight, platform)
		r.mu.Unlock()
	}()

	sources, err := r.sources.ListByPlatform(platform)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	vocabulary, err := r.interests.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load interests: %w", err)
	}
	matcher := newInterestMatcher(vocabulary)

	var (
		wg      sync.WaitGroup
		sem     = make(chan struct{}, MaxConcurrentFetches)
		fetchMu sync.Mutex
		fetched []models.Post
	)
	for _, source := range sources {
		wg.Add(1)
		go func(source models.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			posts, err := ingester.Fetch(ctx, source)
			if err != nil {
				log.Printf("Refresh: source %s (%s) failed: %v", source.Name, source.SourceID, err)
				return
			}
			fetchMu.Lock()
			fetched = append(fetched, posts...)
			fetchMu.Unlock()
		}(source)
	}
	wg.Wait()

	stats := &models.RefreshStats{PostsFetched: len(fetched)}
	for i := range fetched {
		post := &fetched[i]
		post.PostID = uuid.NewString()
		post.InterestTags = matcher.match(post)

		inserted, err := r.posts.UpsertByExternalID(ctx, post)
		if err != nil {
			log.Printf("Refresh: failed to store post %s: %v", post.ExternalID, err)
			continue
		}
		if !inserted {
			continue
		}
		stats.PostsNew++
		for _, tag := range post.InterestTags {
			if err := r.interests.IncrementWeight(tag, 1); err != nil {
				log.Printf("Refresh: failed to bump interest %q: %v", tag, err)
			}
		}
	}

	stats.InterestsCount, err = r.interests.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count interests: %w", err)
	}
	return stats, nil
}
