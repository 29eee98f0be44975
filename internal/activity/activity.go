// Package activity merges conversation and memory records into the unified
// reverse-chronological timeline shown on the dashboard.
package activity

import (
	"fmt"
	"sort"
	"time"

	"github.com/ushadow-io/feed-service/internal/models"
)

// Merge combines conversations and memories into one activity list sorted by
// timestamp descending. The output always has len(conversations)+len(memories)
// entries: a conversation and a memory are never the same entity, so nothing
// is deduplicated. Entries with equal timestamps keep their input order.
func Merge(conversations []models.Conversation, memories []models.Memory) []models.Activity {
	activities := make([]models.Activity, 0, len(conversations)+len(memories))

	for _, c := range conversations {
		activities = append(activities, models.Activity{
			Type:        models.ActivityConversation,
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Summary,
			Timestamp:   c.Timestamp,
			Source:      c.Source,
		})
	}
	for _, m := range memories {
		activities = append(activities, models.Activity{
			Type:        models.ActivityMemory,
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Content,
			Timestamp:   m.CreatedAt,
			Source:      m.Source,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	return activities
}

// FormatTimestamp renders ts relative to now. All thresholds use floor
// division of elapsed time:
//
//	< 1 minute        "Just now"
//	< 60 minutes      "{n}m ago"
//	< 24 hours        "{n}h ago"
//	floor(h/24) == 1  "Yesterday"
//	< 7 days          "{n}d ago"
//	otherwise         the absolute date
func FormatTimestamp(ts, now time.Time) string {
	elapsed := now.Sub(ts)
	if elapsed < time.Minute {
		return "Just now"
	}
	mins := int(elapsed / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	hours := int(elapsed / time.Hour)
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "Yesterday"
	}
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return ts.Format("Jan 2, 2006")
}
