package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ushadow-io/feed-service/internal/models"
)

func TestCreateSource(t *testing.T) {
	t.Run("creates a source with a generated ID", func(t *testing.T) {
		repo := &fakeSourceRepo{}
		h := NewSourceHandler(repo)
		c, rec := newTestContext(http.MethodPost, "/api/v1/sources",
			`{"platform_type": "mastodon", "name": "fosstodon", "feed_url": "https://fosstodon.org/@gopher.rss"}`)

		require.NoError(t, h.CreateSource(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Data struct {
				Source models.Source `json:"source"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Data.Source.SourceID)
		assert.Equal(t, models.PlatformMastodon, body.Data.Source.PlatformType)
		require.Len(t, repo.sources, 1)
	})

	t.Run("rejects an unknown platform before touching the store", func(t *testing.T) {
		repo := &fakeSourceRepo{}
		h := NewSourceHandler(repo)
		c, _ := newTestContext(http.MethodPost, "/api/v1/sources",
			`{"platform_type": "friendster", "name": "x", "feed_url": "https://example.com/feed"}`)

		err := h.CreateSource(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.Empty(t, repo.sources)
	})

	t.Run("rejects an empty name before touching the store", func(t *testing.T) {
		repo := &fakeSourceRepo{}
		h := NewSourceHandler(repo)
		c, _ := newTestContext(http.MethodPost, "/api/v1/sources",
			`{"platform_type": "bluesky", "name": "", "feed_url": "https://example.com/feed"}`)

		require.Error(t, h.CreateSource(c))
		assert.Empty(t, repo.sources)
	})
}

func TestDeleteSource(t *testing.T) {
	t.Run("removes an existing source", func(t *testing.T) {
		repo := &fakeSourceRepo{sources: []models.Source{{SourceID: "s1", PlatformType: models.PlatformBluesky}}}
		h := NewSourceHandler(repo)
		c, rec := newTestContext(http.MethodDelete, "/api/v1/sources/s1", "")
		c.SetParamNames("id")
		c.SetParamValues("s1")

		require.NoError(t, h.DeleteSource(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, repo.sources)
	})

	t.Run("unknown source yields 404", func(t *testing.T) {
		h := NewSourceHandler(&fakeSourceRepo{})
		c, _ := newTestContext(http.MethodDelete, "/api/v1/sources/ghost", "")
		c.SetParamNames("id")
		c.SetParamValues("ghost")

		err := h.DeleteSource(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}
