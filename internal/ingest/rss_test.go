package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ushadow-io/feed-service/internal/models"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>gopher</title>
    <item>
      <title>Generics in practice</title>
      <description>Notes from the field</description>
      <link>https://example.social/@gopher/1</link>
      <guid>tag:example.social,2025:1</guid>
      <pubDate>Sun, 01 Jun 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Scheduler internals</title>
      <description>Part two</description>
      <link>https://example.social/@gopher/2</link>
      <pubDate>Sat, 31 May 2025 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSIngesterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	ing := NewRSSIngester(models.PlatformMastodon, server.Client())
	source := models.Source{SourceID: "s1", Name: "gopher", FeedURL: server.URL}

	posts, err := ing.Fetch(context.Background(), source)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	first := posts[0]
	if first.ExternalID != "tag:example.social,2025:1" {
		t.Fatalf("expected GUID as external ID, got %q", first.ExternalID)
	}
	if first.PlatformType != models.PlatformMastodon {
		t.Fatalf("expected mastodon platform, got %s", first.PlatformType)
	}
	if first.Title != "Generics in practice" || first.Content != "Notes from the field" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.SourceID != "s1" || first.Author != "gopher" {
		t.Fatalf("expected source identity carried over: %+v", first)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected published date parsed")
	}

	// Items without a GUID fall back to the link.
	if posts[1].ExternalID != "https://example.social/@gopher/2" {
		t.Fatalf("expected link fallback, got %q", posts[1].ExternalID)
	}
}

func TestRSSIngesterFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ing := NewRSSIngester(models.PlatformBluesky, server.Client())
	if _, err := ing.Fetch(context.Background(), models.Source{FeedURL: server.URL}); err == nil {
		t.Fatal("expected error for a failing feed")
	}
}

func TestChannelIDFromURL(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/channel/UCabc123", "UCabc123", false},
		{"UCabc123", "UCabc123", false},
		{"https://www.youtube.com/", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := channelIDFromURL(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("channelIDFromURL(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("channelIDFromURL(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}
