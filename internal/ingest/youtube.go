package ingest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ushadow-io/feed-service/internal/models"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

const maxVideosPerChannel = 25

// YouTubeIngester fetches recent videos of a channel through the YouTube
// Data API.
type YouTubeIngester struct {
	service *youtube.Service
}

// NewYouTubeIngester creates a YouTube ingester authenticated by API key.
func NewYouTubeIngester(ctx context.Context, apiKey string) (*YouTubeIngester, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeIngester{service: service}, nil
}

func (i *YouTubeIngester) Platform() models.PlatformType {
	return models.PlatformYouTube
}

// Fetch lists the channel's most recent videos, newest first.
func (i *YouTubeIngester) Fetch(ctx context.Context, source models.Source) ([]models.Post, error) {
	channelID, err := channelIDFromURL(source.FeedURL)
	if err != nil {
		return nil, err
	}

	call := i.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(maxVideosPerChannel)
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed for channel %s: %w", channelID, err)
	}

	posts := make([]models.Post, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			ts = time.Now()
		}

		post := models.Post{
			ExternalID:   item.Id.VideoId,
			SourceID:     source.SourceID,
			PlatformType: models.PlatformYouTube,
			Author:       item.Snippet.ChannelTitle,
			Title:        item.Snippet.Title,
			Content:      item.Snippet.Description,
			URL:          "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			Timestamp:    ts,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			post.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// channelIDFromURL extracts the channel ID from a channel URL such as
// https://www.youtube.com/channel/UCxxxx, or accepts a bare channel ID.
func channelIDFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		if raw != "" && !strings.Contains(raw, "/") {
			return raw, nil
		}
		return "", fmt.Errorf("invalid youtube channel reference: %q", raw)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := parts[len(parts)-1]
	if id == "" {
		return "", fmt.Errorf("invalid youtube channel reference: %q", raw)
	}
	return id, nil
}
