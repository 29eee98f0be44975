package ingest

import (
	"strings"

	"github.com/ushadow-io/feed-service/internal/models"
)

// interestMatcher tags posts against the interest vocabulary. Matching is a
// case-insensitive substring check over the post's title and content.
type interestMatcher struct {
	names []string // original casing, index-aligned with lowered
	lower []string
}

func newInterestMatcher(interests []models.Interest) *interestMatcher {
	m := &interestMatcher{
		names: make([]string, 0, len(interests)),
		lower: make([]string, 0, len(interests)),
	}
	for _, interest := range interests {
		if interest.Name == "" {
			continue
		}
		m.names = append(m.names, interest.Name)
		m.lower = append(m.lower, strings.ToLower(interest.Name))
	}
	return m
}

// match returns the interest names mentioned by the post, in vocabulary order.
func (m *interestMatcher) match(post *models.Post) []string {
	text := strings.ToLower(post.Title + " " + post.Content)
	var matched []string
	for i, needle := range m.lower {
		if strings.Contains(text, needle) {
			matched = append(matched, m.names[i])
		}
	}
	return matched
}
