package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/ushadow-io/feed-service/internal/models"
)

// RSSIngester fetches posts from RSS/Atom feeds. Mastodon accounts, Bluesky
// profiles and Bluesky timeline bridges all expose their content as feeds, so
// one ingester covers all three platforms; the platform tag is fixed per
// instance.
type RSSIngester struct {
	platform models.PlatformType
	parser   *gofeed.Parser
}

// NewRSSIngester creates an RSS ingester for the given platform.
func NewRSSIngester(platform models.PlatformType, client *http.Client) *RSSIngester {
	parser := gofeed.NewParser()
	if client != nil {
		parser.Client = client
	}
	return &RSSIngester{platform: platform, parser: parser}
}

func (i *RSSIngester) Platform() models.PlatformType {
	return i.platform
}

// Fetch parses the source's feed URL and maps its items to posts.
func (i *RSSIngester) Fetch(ctx context.Context, source models.Source) ([]models.Post, error) {
	feed, err := i.parser.ParseURLWithContext(source.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", source.FeedURL, err)
	}

	posts := make([]models.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		externalID := item.GUID
		if externalID == "" {
			externalID = item.Link
		}
		if externalID == "" {
			continue
		}

		ts := time.Now()
		if item.PublishedParsed != nil {
			ts = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			ts = *item.UpdatedParsed
		}

		author := source.Name
		if item.Author != nil && item.Author.Name != "" {
			author = item.Author.Name
		}

		post := models.Post{
			ExternalID:   externalID,
			SourceID:     source.SourceID,
			PlatformType: i.platform,
			Author:       author,
			Title:        item.Title,
			Content:      item.Description,
			URL:          item.Link,
			Timestamp:    ts,
		}
		if item.Image != nil {
			post.ThumbnailURL = item.Image.URL
		}
		posts = append(posts, post)
	}
	return posts, nil
}
