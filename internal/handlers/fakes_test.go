package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/repositories"
	"github.com/ushadow-io/feed-service/validators"
)

// fakePostRepo is an in-memory PostRepository.
type fakePostRepo struct {
	posts       []models.Post
	markSeenErr error
}

var _ repositories.PostRepository = (*fakePostRepo)(nil)

func (f *fakePostRepo) matches(p models.Post, q repositories.PostQuery) bool {
	if p.PlatformType != q.Platform {
		return false
	}
	if !q.ShowSeen && p.Seen {
		return false
	}
	if q.Interest != "" {
		found := false
		for _, tag := range p.InterestTags {
			if tag == q.Interest {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakePostRepo) FindPage(ctx context.Context, q repositories.PostQuery) ([]models.Post, int64, error) {
	var matched []models.Post
	for _, p := range f.posts {
		if f.matches(p, q) {
			matched = append(matched, p)
		}
	}
	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakePostRepo) GetByPostID(ctx context.Context, postID string) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].PostID == postID {
			return &f.posts[i], nil
		}
	}
	return nil, fmt.Errorf("post not found")
}

func (f *fakePostRepo) MarkSeen(ctx context.Context, postID string) error {
	if f.markSeenErr != nil {
		return f.markSeenErr
	}
	for i := range f.posts {
		if f.posts[i].PostID == postID {
			f.posts[i].Seen = true
			return nil
		}
	}
	return fmt.Errorf("post not found")
}

func (f *fakePostRepo) SetBookmarked(ctx context.Context, postID string, bookmarked bool) error {
	for i := range f.posts {
		if f.posts[i].PostID == postID {
			f.posts[i].Bookmarked = bookmarked
			return nil
		}
	}
	return fmt.Errorf("post not found")
}

func (f *fakePostRepo) UpsertByExternalID(ctx context.Context, post *models.Post) (bool, error) {
	for _, p := range f.posts {
		if p.PlatformType == post.PlatformType && p.ExternalID == post.ExternalID {
			return false, nil
		}
	}
	f.posts = append(f.posts, *post)
	return true, nil
}

// fakeSourceRepo is an in-memory SourceRepository.
type fakeSourceRepo struct {
	sources []models.Source
}

var _ repositories.SourceRepository = (*fakeSourceRepo)(nil)

func (f *fakeSourceRepo) Create(source *models.Source) error {
	f.sources = append(f.sources, *source)
	return nil
}

func (f *fakeSourceRepo) Delete(sourceID string) error {
	for i, s := range f.sources {
		if s.SourceID == sourceID {
			f.sources = append(f.sources[:i], f.sources[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("source not found")
}

func (f *fakeSourceRepo) List() ([]models.Source, error) {
	return append([]models.Source(nil), f.sources...), nil
}

func (f *fakeSourceRepo) ListByPlatform(platform models.PlatformType) ([]models.Source, error) {
	var matched []models.Source
	for _, s := range f.sources {
		if s.PlatformType == platform {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeSourceRepo) CountByPlatform(platform models.PlatformType) (int64, error) {
	matched, _ := f.ListByPlatform(platform)
	return int64(len(matched)), nil
}

// fakeInterestRepo is an in-memory InterestRepository.
type fakeInterestRepo struct {
	weights map[string]int64
}

var _ repositories.InterestRepository = (*fakeInterestRepo)(nil)

func (f *fakeInterestRepo) List() ([]models.Interest, error) {
	var interests []models.Interest
	for name, weight := range f.weights {
		interests = append(interests, models.Interest{Name: name, Weight: weight})
	}
	return interests, nil
}

func (f *fakeInterestRepo) IncrementWeight(name string, delta int64) error {
	if f.weights == nil {
		f.weights = make(map[string]int64)
	}
	f.weights[name] += delta
	return nil
}

func (f *fakeInterestRepo) Count() (int64, error) {
	return int64(len(f.weights)), nil
}

// newTestContext builds an echo context with the project validator installed.
func newTestContext(method, target, payload string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if payload != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
