package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlatformType identifies the origin platform of a feed post.
type PlatformType string

const (
	PlatformMastodon        PlatformType = "mastodon"
	PlatformBluesky         PlatformType = "bluesky"
	PlatformBlueskyTimeline PlatformType = "bluesky_timeline"
	PlatformYouTube         PlatformType = "youtube"
)

// AllPlatforms lists every supported platform type, in tab order.
var AllPlatforms = []PlatformType{
	PlatformMastodon,
	PlatformBluesky,
	PlatformBlueskyTimeline,
	PlatformYouTube,
}

// Valid reports whether p is a known platform type.
func (p PlatformType) Valid() bool {
	switch p {
	case PlatformMastodon, PlatformBluesky, PlatformBlueskyTimeline, PlatformYouTube:
		return true
	}
	return false
}

// Post represents an aggregated feed item stored in MongoDB.
//
// PlatformType is immutable after ingestion and selects the specialized
// presentation on the dashboard. Seen and Bookmarked are the only fields
// mutated after ingestion; the stored document is the server truth that
// optimistic client state reconciles against on the next fetch.
type Post struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	PostID       string             `json:"post_id" bson:"post_id"`
	ExternalID   string             `json:"external_id" bson:"external_id"` // platform-native identifier, dedupe key
	SourceID     string             `json:"source_id,omitempty" bson:"source_id,omitempty"`
	PlatformType PlatformType       `json:"platform_type" bson:"platform_type"`
	Author       string             `json:"author,omitempty" bson:"author,omitempty"`
	Title        string             `json:"title,omitempty" bson:"title,omitempty"`
	Content      string             `json:"content,omitempty" bson:"content,omitempty"`
	URL          string             `json:"url,omitempty" bson:"url,omitempty"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
	Seen         bool               `json:"seen" bson:"seen"`
	Bookmarked   bool               `json:"bookmarked" bson:"bookmarked"`
	InterestTags []string           `json:"interest_tags,omitempty" bson:"interest_tags,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// BookmarkRequest defines the request body for setting a post's bookmark flag
type BookmarkRequest struct {
	Bookmarked *bool `json:"bookmarked" validate:"required"`
}
