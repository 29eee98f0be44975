package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/viewmodel"
)

func TestFetchPosts(t *testing.T) {
	t.Run("decodes posts and pagination meta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/feed" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("platform") != "bluesky" || q.Get("page") != "2" || q.Get("showSeen") != "true" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			if q.Get("interest") != "ai" {
				t.Errorf("expected interest filter, got %q", q.Get("interest"))
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"posts": []map[string]interface{}{
						{"post_id": "p1", "platform_type": "bluesky", "seen": false},
					},
				},
				"meta": map[string]interface{}{
					"currentPage": 2, "totalPages": 3, "totalItems": 45, "itemsPerPage": 20,
				},
			})
		}))
		defer server.Close()

		client := New(server.URL)
		page, err := client.FetchPosts(context.Background(), viewmodel.FetchQuery{
			Page: 2, PageSize: 20, Platform: models.PlatformBluesky, Interest: "ai", ShowSeen: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Posts) != 1 || page.Posts[0].PostID != "p1" {
			t.Fatalf("unexpected posts: %+v", page.Posts)
		}
		if page.Page != 2 || page.TotalPages != 3 || page.TotalItems != 45 {
			t.Fatalf("unexpected meta: %+v", page)
		}
	})

	t.Run("non-2xx maps to a typed APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message": "upstream broke"}`))
		}))
		defer server.Close()

		client := New(server.URL)
		_, err := client.FetchPosts(context.Background(), viewmodel.FetchQuery{
			Page: 1, PageSize: 20, Platform: models.PlatformMastodon,
		})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %v", err, err)
		}
		if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream broke" {
			t.Fatalf("unexpected error: %+v", apiErr)
		}
	})

	t.Run("transport failure is an APIError with no status", func(t *testing.T) {
		client := New("http://127.0.0.1:0")
		_, err := client.FetchPosts(context.Background(), viewmodel.FetchQuery{
			Page: 1, PageSize: 20, Platform: models.PlatformMastodon,
		})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %v", err, err)
		}
		if apiErr.StatusCode != 0 {
			t.Fatalf("expected no status code, got %d", apiErr.StatusCode)
		}
	})
}

func TestMutations(t *testing.T) {
	t.Run("mark seen posts to the seen endpoint", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			_, _ = w.Write([]byte(`{"success": true, "data": {"seen": true}}`))
		}))
		defer server.Close()

		client := New(server.URL)
		if err := client.MarkSeen(context.Background(), "p1"); err != nil {
			t.Fatal(err)
		}
		if gotPath != "POST /api/v1/posts/p1/seen" {
			t.Fatalf("unexpected request: %s", gotPath)
		}
	})

	t.Run("bookmark sends the target value", func(t *testing.T) {
		var gotBody map[string]bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"success": true, "data": {"bookmarked": true}}`))
		}))
		defer server.Close()

		client := New(server.URL)
		if err := client.SetBookmarked(context.Background(), "p1", true); err != nil {
			t.Fatal(err)
		}
		if !gotBody["bookmarked"] {
			t.Fatalf("expected bookmarked=true in body, got %v", gotBody)
		}
	})
}

func TestRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/platforms/youtube/refresh" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success": true, "data": {"posts_fetched": 7, "posts_new": 2, "interests_count": 9}}`))
	}))
	defer server.Close()

	client := New(server.URL)
	stats, err := client.Refresh(context.Background(), models.PlatformYouTube)
	if err != nil {
		t.Fatal(err)
	}
	if stats.PostsFetched != 7 || stats.PostsNew != 2 || stats.InterestsCount != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"success": true, "data": {"sources": [{"source_id": "s1", "platform_type": "mastodon", "name": "a"}]}}`))
		case http.MethodPost:
			var req models.CreateSourceRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{"source": map[string]interface{}{
					"source_id": "s2", "platform_type": req.PlatformType, "name": req.Name,
				}},
			})
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{"success": true, "data": {"deleted": true}}`))
		}
	}))
	defer server.Close()

	client := New(server.URL)
	ctx := context.Background()

	sources, err := client.ListSources(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || sources[0].SourceID != "s1" {
		t.Fatalf("unexpected sources: %+v", sources)
	}

	source, err := client.AddSource(ctx, models.CreateSourceRequest{
		PlatformType: "bluesky", Name: "b", FeedURL: "https://example.com/feed",
	})
	if err != nil {
		t.Fatal(err)
	}
	if source.SourceID != "s2" || source.PlatformType != models.PlatformBluesky {
		t.Fatalf("unexpected source: %+v", source)
	}

	if err := client.RemoveSource(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
}

func TestActivityEndpoints(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("feed service should not be called: %s", r.URL.Path)
	}))
	defer feed.Close()

	activity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/conversations":
			_, _ = w.Write([]byte(`[{"id": "c1", "title": "standup", "timestamp": "2025-06-01T12:00:00Z"}]`))
		case "/api/v1/memories":
			_, _ = w.Write([]byte(`[{"id": "m1", "title": "note", "created_at": "2025-06-01T13:00:00Z"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer activity.Close()

	client := New(feed.URL, WithActivityURLs(activity.URL, activity.URL))
	ctx := context.Background()

	conversations, err := client.ListConversations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(conversations) != 1 || conversations[0].ID != "c1" {
		t.Fatalf("unexpected conversations: %+v", conversations)
	}

	memories, err := client.ListMemories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(memories) != 1 || memories[0].ID != "m1" {
		t.Fatalf("unexpected memories: %+v", memories)
	}
}
