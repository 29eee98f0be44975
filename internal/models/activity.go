package models

import "time"

// ActivityType discriminates the origin of a dashboard activity entry.
type ActivityType string

const (
	ActivityConversation ActivityType = "conversation"
	ActivityMemory       ActivityType = "memory"
)

// Activity is one entry of the unified dashboard timeline. It is transient:
// reconstructed from the conversation and memory lists on every load, never
// persisted by this service.
type Activity struct {
	Type        ActivityType `json:"type"`
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Source      string       `json:"source,omitempty"`
}

// Conversation is a record returned by the conversations service.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
}

// Memory is a record returned by the memory service.
type Memory struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source,omitempty"`
}
