package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ushadow-io/feed-service/internal/models"
)

// DefaultPageSize is used when the caller does not override the page size.
const DefaultPageSize = 20

// ErrNoSources is returned by Refresh when the active platform has no
// configured sources. No network call is made in that case.
var ErrNoSources = errors.New("no sources configured for this platform")

// ErrUnknownPost is returned when a mutation targets a post that is not on
// the current page.
var ErrUnknownPost = errors.New("post not on current page")

// FeedState is a consistent snapshot of the feed view model, safe to render
// from while the model keeps mutating.
type FeedState struct {
	Tab              models.PlatformType
	Page             int
	PageSize         int
	TotalItems       int
	TotalPages       int
	SelectedInterest string
	ShowSeen         bool
	Posts            []models.Post
	Sources          []models.Source
	Loading          bool
	Refreshing       bool
	FetchErr         error
	RefreshErr       error
}

// FeedViewModel owns the state of one feed view: the active platform tab,
// interest and seen filters, page cursor and the currently displayed posts.
//
// Responses are guarded by a generation counter: any state change that
// triggers a refetch bumps the generation, and a response is only applied if
// its generation is still current. A slow stale response can therefore never
// overwrite the result of a newer request.
//
// Mutations (MarkSeen, ToggleBookmark) are optimistic: the local field flips
// before the round-trip and is reverted, for that record only, on failure.
type FeedViewModel struct {
	api FeedAPI

	mu               sync.Mutex
	gen              uint64
	tab              models.PlatformType
	page             int
	pageSize         int
	totalItems       int
	totalPages       int
	selectedInterest string
	showSeen         bool
	posts            []models.Post
	sources          []models.Source
	loading          bool
	refreshing       bool
	fetchErr         error
	refreshErr       error
}

// Option configures a FeedViewModel.
type Option func(*FeedViewModel)

// WithPageSize overrides the default page size.
func WithPageSize(size int) Option {
	return func(vm *FeedViewModel) {
		if size > 0 {
			vm.pageSize = size
		}
	}
}

// WithInitialTab selects the starting tab, e.g. from a location hash.
func WithInitialTab(tab models.PlatformType) Option {
	return func(vm *FeedViewModel) {
		if tab.Valid() {
			vm.tab = tab
		}
	}
}

// NewFeedViewModel creates a feed view model over the given API port.
func NewFeedViewModel(api FeedAPI, opts ...Option) *FeedViewModel {
	vm := &FeedViewModel{
		api:      api,
		tab:      models.PlatformMastodon,
		page:     1,
		pageSize: DefaultPageSize,
		showSeen: false,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// State returns a snapshot of the current view state.
func (vm *FeedViewModel) State() FeedState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return FeedState{
		Tab:              vm.tab,
		Page:             vm.page,
		PageSize:         vm.pageSize,
		TotalItems:       vm.totalItems,
		TotalPages:       vm.totalPages,
		SelectedInterest: vm.selectedInterest,
		ShowSeen:         vm.showSeen,
		Posts:            append([]models.Post(nil), vm.posts...),
		Sources:          append([]models.Source(nil), vm.sources...),
		Loading:          vm.loading,
		Refreshing:       vm.refreshing,
		FetchErr:         vm.fetchErr,
		RefreshErr:       vm.refreshErr,
	}
}

// SelectTab switches the active platform tab. The page resets to 1 and the
// interest filter clears: the interest vocabulary and page count of the old
// tab are meaningless on the new one.
func (vm *FeedViewModel) SelectTab(ctx context.Context, tab models.PlatformType) error {
	if !tab.Valid() {
		return fmt.Errorf("unknown platform type: %q", tab)
	}
	vm.mu.Lock()
	vm.tab = tab
	vm.page = 1
	vm.selectedInterest = ""
	vm.mu.Unlock()
	return vm.LoadPage(ctx)
}

// SetInterestFilter toggles the single-select interest filter: selecting the
// already-active interest clears it. The page resets to 1 either way.
func (vm *FeedViewModel) SetInterestFilter(ctx context.Context, name string) error {
	vm.mu.Lock()
	if vm.selectedInterest == name {
		vm.selectedInterest = ""
	} else {
		vm.selectedInterest = name
	}
	vm.page = 1
	vm.mu.Unlock()
	return vm.LoadPage(ctx)
}

// SetShowSeen switches between all-posts and unseen-only. The page resets to
// 1 because the result set size changes.
func (vm *FeedViewModel) SetShowSeen(ctx context.Context, showSeen bool) error {
	vm.mu.Lock()
	if vm.showSeen == showSeen {
		vm.mu.Unlock()
		return nil
	}
	vm.showSeen = showSeen
	vm.page = 1
	vm.mu.Unlock()
	return vm.LoadPage(ctx)
}

// SetPage moves the page cursor and refetches.
func (vm *FeedViewModel) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	vm.mu.Lock()
	vm.page = page
	vm.mu.Unlock()
	return vm.LoadPage(ctx)
}

// LoadPage fetches the page described by the current filters. A response is
// discarded when a newer request superseded it. When the server reports fewer
// pages than the requested cursor, the cursor clamps and the page is
// refetched once instead of rendering an empty page forever.
func (vm *FeedViewModel) LoadPage(ctx context.Context) error {
	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	q := FetchQuery{
		Page:     vm.page,
		PageSize: vm.pageSize,
		Platform: vm.tab,
		Interest: vm.selectedInterest,
		ShowSeen: vm.showSeen,
	}
	vm.loading = true
	vm.mu.Unlock()

	page, err := vm.api.FetchPosts(ctx, q)

	vm.mu.Lock()
	if gen != vm.gen {
		// Superseded by a newer request; its response owns the view.
		vm.mu.Unlock()
		return nil
	}
	vm.loading = false
	if err != nil {
		// Fetch failure is additive: previously displayed posts stay.
		vm.fetchErr = err
		vm.mu.Unlock()
		return err
	}
	vm.fetchErr = nil

	clamped := models.ClampPage(q.Page, page.TotalPages)
	if clamped != q.Page {
		vm.page = clamped
		vm.mu.Unlock()
		return vm.LoadPage(ctx)
	}

	vm.posts = page.Posts
	vm.totalItems = page.TotalItems
	vm.totalPages = page.TotalPages
	vm.mu.Unlock()
	return nil
}

// Refresh asks the backend to ingest fresh posts for the active platform
// only. When that platform has zero configured sources the call is rejected
// locally, without any network traffic, so the dashboard can explain "no
// sources" instead of showing an error. A refresh failure never clears the
// displayed posts.
func (vm *FeedViewModel) Refresh(ctx context.Context) (*models.RefreshStats, error) {
	vm.mu.Lock()
	tab := vm.tab
	hasSource := false
	for _, s := range vm.sources {
		if s.PlatformType == tab {
			hasSource = true
			break
		}
	}
	if !hasSource {
		vm.mu.Unlock()
		return nil, ErrNoSources
	}
	vm.refreshing = true
	vm.mu.Unlock()

	stats, err := vm.api.Refresh(ctx, tab)

	vm.mu.Lock()
	vm.refreshing = false
	vm.refreshErr = err
	vm.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := vm.LoadPage(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// MarkSeen optimistically flags the post as seen, then confirms with the
// backend. On failure only that post's seen flag is reverted.
func (vm *FeedViewModel) MarkSeen(ctx context.Context, postID string) error {
	vm.mu.Lock()
	idx := vm.indexOf(postID)
	if idx < 0 {
		vm.mu.Unlock()
		return ErrUnknownPost
	}
	prev := vm.posts[idx].Seen
	vm.posts[idx].Seen = true
	vm.mu.Unlock()

	if err := vm.api.MarkSeen(ctx, postID); err != nil {
		vm.mu.Lock()
		if idx := vm.indexOf(postID); idx >= 0 {
			vm.posts[idx].Seen = prev
		}
		vm.mu.Unlock()
		return err
	}
	return nil
}

// ToggleBookmark optimistically flips the post's bookmark flag, then
// confirms with the backend. The target value is computed from the
// pre-image, so the server call is an idempotent set rather than a blind
// toggle. On failure only that post's bookmark flag is reverted.
func (vm *FeedViewModel) ToggleBookmark(ctx context.Context, postID string) error {
	vm.mu.Lock()
	idx := vm.indexOf(postID)
	if idx < 0 {
		vm.mu.Unlock()
		return ErrUnknownPost
	}
	prev := vm.posts[idx].Bookmarked
	target := !prev
	vm.posts[idx].Bookmarked = target
	vm.mu.Unlock()

	if err := vm.api.SetBookmarked(ctx, postID, target); err != nil {
		vm.mu.Lock()
		if idx := vm.indexOf(postID); idx >= 0 {
			vm.posts[idx].Bookmarked = prev
		}
		vm.mu.Unlock()
		return err
	}
	return nil
}

// LoadSources refreshes the cached source list used by Refresh gating and
// the sources panel.
func (vm *FeedViewModel) LoadSources(ctx context.Context) error {
	sources, err := vm.api.ListSources(ctx)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.sources = sources
	vm.mu.Unlock()
	return nil
}

// AddSource creates a source and updates the local source cache.
func (vm *FeedViewModel) AddSource(ctx context.Context, req models.CreateSourceRequest) (*models.Source, error) {
	source, err := vm.api.AddSource(ctx, req)
	if err != nil {
		return nil, err
	}
	vm.mu.Lock()
	vm.sources = append(vm.sources, *source)
	vm.mu.Unlock()
	return source, nil
}

// RemoveSource deletes a source. Already-fetched posts from that source stay
// on the current page until the next fetch.
func (vm *FeedViewModel) RemoveSource(ctx context.Context, sourceID string) error {
	if err := vm.api.RemoveSource(ctx, sourceID); err != nil {
		return err
	}
	vm.mu.Lock()
	kept := vm.sources[:0]
	for _, s := range vm.sources {
		if s.SourceID != sourceID {
			kept = append(kept, s)
		}
	}
	vm.sources = kept
	vm.mu.Unlock()
	return nil
}

// indexOf returns the position of postID on the current page, or -1.
// Callers must hold vm.mu.
func (vm *FeedViewModel) indexOf(postID string) int {
	for i := range vm.posts {
		if vm.posts[i].PostID == postID {
			return i
		}
	}
	return -1
}
