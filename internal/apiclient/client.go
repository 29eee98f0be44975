// Package apiclient is the typed HTTP client the dashboard view models drive:
// it speaks the feed service's envelope API and the sibling conversation and
// memory services.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/viewmodel"
)

// APIError is a failed backend call: transport errors and non-2xx responses
// both surface as *APIError so callers can tell a failed fetch apart from an
// empty-but-successful one.
type APIError struct {
	StatusCode int // 0 for transport-level failures
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api request failed: %s", e.Message)
	}
	return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Message)
}

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithActivityURLs sets the base URLs of the conversation and memory
// services used by the dashboard timeline.
func WithActivityURLs(conversationsURL, memoriesURL string) Option {
	return func(c *Client) {
		c.conversationsURL = conversationsURL
		c.memoriesURL = memoriesURL
	}
}

var (
	_ viewmodel.FeedAPI     = (*Client)(nil)
	_ viewmodel.ActivityAPI = (*Client)(nil)
)

// Client talks to the feed service API. It satisfies both view-model ports.
type Client struct {
	baseURL          string
	conversationsURL string
	memoriesURL      string
	httpClient       HTTPClient
}

// New creates a client for the feed service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:          baseURL,
		conversationsURL: baseURL,
		memoriesURL:      baseURL,
		httpClient:       &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the response wrapper every feed service endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Message string          `json:"message"`
}

// FetchPosts retrieves one filtered feed page.
func (c *Client) FetchPosts(ctx context.Context, q viewmodel.FetchQuery) (*viewmodel.PostPage, error) {
	params := url.Values{}
	params.Set("platform", string(q.Platform))
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("showSeen", strconv.FormatBool(q.ShowSeen))
	if q.Interest != "" {
		params.Set("interest", q.Interest)
	}

	env, err := c.do(ctx, http.MethodGet, "/api/v1/feed?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Posts []models.Post `json:"posts"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("malformed feed payload: %v", err)}
	}
	var meta models.PageMeta
	if err := json.Unmarshal(env.Meta, &meta); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("malformed feed meta: %v", err)}
	}

	return &viewmodel.PostPage{
		Posts:      data.Posts,
		Page:       meta.CurrentPage,
		TotalPages: meta.TotalPages,
		TotalItems: meta.TotalItems,
	}, nil
}

// Refresh triggers ingestion for one platform.
func (c *Client) Refresh(ctx context.Context, platform models.PlatformType) (*models.RefreshStats, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/platforms/"+string(platform)+"/refresh", nil)
	if err != nil {
		return nil, err
	}
	var stats models.RefreshStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("malformed refresh payload: %v", err)}
	}
	return &stats, nil
}

// MarkSeen flags a post as seen.
func (c *Client) MarkSeen(ctx context.Context, postID string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/seen", nil)
	return err
}

// SetBookmarked sets a post's bookmark flag.
func (c *Client) SetBookmarked(ctx context.Context, postID string, bookmarked bool) error {
	body := map[string]bool{"bookmarked": bookmarked}
	_, err := c.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/bookmark", body)
	return err
}

// ListSources retrieves all configured sources.
func (c *Client) ListSources(ctx context.Context) ([]models.Source, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/sources", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		Sources []models.Source `json:"sources"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("malformed sources payload: %v", err)}
	}
	return data.Sources, nil
}

// AddSource creates a new source subscription.
func (c *Client) AddSource(ctx context.Context, req models.CreateSourceRequest) (*models.Source, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/sources", req)
	if err != nil {
		return nil, err
	}
	var data struct {
		Source models.Source `json:"source"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("malformed source payload: %v", err)}
	}
	return &data.Source, nil
}

// RemoveSource deletes a source subscription.
func (c *Client) RemoveSource(ctx context.Context, sourceID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/sources/"+sourceID, nil)
	return err
}

// ListInterests retrieves the interest vocabulary.
func (c *Client) ListInterests(ctx context.Context) ([]models.Interest, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/interests", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		Interests []models.Interest `json:"interests"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("malformed interests payload: %v", err)}
	}
	return data.Interests, nil
}

// ListConversations retrieves recent conversations from the conversation
// service.
func (c *Client) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := c.getJSON(ctx, c.conversationsURL+"/api/v1/conversations", &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// ListMemories retrieves recent memories from the memory service.
func (c *Client) ListMemories(ctx context.Context) ([]models.Memory, error) {
	var memories []models.Memory
	if err := c.getJSON(ctx, c.memoriesURL+"/api/v1/memories", &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

// do issues one request against the feed service and decodes its envelope.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return &env, nil
}

// getJSON fetches a bare JSON document from a sibling service.
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error response body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(raw)
}
