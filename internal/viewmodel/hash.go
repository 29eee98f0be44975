package viewmodel

import (
	"strings"

	"github.com/ushadow-io/feed-service/internal/models"
)

// TabFragment encodes a platform tab as the location-hash fragment written on
// every tab change. Valid fragments are exactly the tab identifier strings.
func TabFragment(tab models.PlatformType) string {
	return "#" + string(tab)
}

// TabFromFragment decodes a location-hash fragment read once at mount into
// the initial tab. Unknown or empty fragments report false and the caller
// falls back to the default tab.
func TabFromFragment(fragment string) (models.PlatformType, bool) {
	tab := models.PlatformType(strings.TrimPrefix(fragment, "#"))
	if !tab.Valid() {
		return "", false
	}
	return tab, true
}
