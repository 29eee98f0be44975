package models

import "time"

// Source represents a configured subscription to an account or channel on a
// platform, stored in PostgreSQL. Removing a source does not remove posts it
// has already produced.
type Source struct {
	ID           uint         `json:"-" gorm:"primaryKey"`
	SourceID     string       `json:"source_id" gorm:"uniqueIndex"`
	PlatformType PlatformType `json:"platform_type" gorm:"index"`
	Name         string       `json:"name"`
	FeedURL      string       `json:"feed_url"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CreateSourceRequest defines the request body for adding a new source
type CreateSourceRequest struct {
	PlatformType string `json:"platform_type" validate:"required,oneof=mastodon bluesky bluesky_timeline youtube"`
	Name         string `json:"name" validate:"required,min=1,max=120"`
	FeedURL      string `json:"feed_url" validate:"required,url"`
}
