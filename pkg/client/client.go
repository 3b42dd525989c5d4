// Package client is a Go SDK for the mockbook feed API. It mirrors the
// HTTP surface one-to-one: every call carries the bearer token of the
// user the client was built for, and server-side failures come back as a
// typed *APIError while transport failures surface as-is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mockbook/models"
	"mockbook/pkg/token"
)

// APIError is a non-2xx response from the server. The body is preserved
// verbatim so callers can inspect the error envelope.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// Client calls the feed API on behalf of a single user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client for the given user. Requests time out after 10
// seconds; timeouts surface as transport errors, not *APIError.
func New(baseURL string, userID int) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token.Encode(userID),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient builds a client over a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, userID int, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, token: token.Encode(userID), http: hc}
}

// Feed fetches the client user's resolved feed.
func (c *Client) Feed(ctx context.Context, userID int) (*models.ResolvedFeed, error) {
	var feed models.ResolvedFeed
	path := fmt.Sprintf("/user/%d/feed", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// PostStatusUpdate creates a feed item authored by userID and returns
// the raw created item.
func (c *Client) PostStatusUpdate(ctx context.Context, userID int, location, contents string) (*models.FeedItem, error) {
	body := map[string]any{
		"userId":   userID,
		"location": location,
		"contents": contents,
	}
	var item models.FeedItem
	if err := c.do(ctx, http.MethodPost, "/feeditem", body, "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// PostComment appends a comment to a feed item and returns the resolved
// parent item.
func (c *Client) PostComment(ctx context.Context, itemID, author int, contents string) (*models.ResolvedFeedItem, error) {
	body := map[string]any{
		"author":   author,
		"contents": contents,
	}
	var item models.ResolvedFeedItem
	path := fmt.Sprintf("/feeditem/%d/CommentThread", itemID)
	if err := c.do(ctx, http.MethodPost, path, body, "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// LikeFeedItem adds userID to the item's like list and returns the
// resolved like list. Liking twice is a no-op.
func (c *Client) LikeFeedItem(ctx context.Context, itemID, userID int) ([]models.User, error) {
	var likes []models.User
	path := fmt.Sprintf("/feeditem/%d/likelist/%d", itemID, userID)
	if err := c.do(ctx, http.MethodPut, path, nil, "", &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// UnlikeFeedItem removes userID from the item's like list.
func (c *Client) UnlikeFeedItem(ctx context.Context, itemID, userID int) ([]models.User, error) {
	var likes []models.User
	path := fmt.Sprintf("/feeditem/%d/likelist/%d", itemID, userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, "", &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// LikeComment adds userID to a comment's like list and returns the
// resolved comment.
func (c *Client) LikeComment(ctx context.Context, itemID, commentIndex, userID int) (*models.ResolvedComment, error) {
	var comment models.ResolvedComment
	path := fmt.Sprintf("/feeditem/%d/CommentThread/%d/likelist/%d", itemID, commentIndex, userID)
	if err := c.do(ctx, http.MethodPut, path, nil, "", &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UnlikeComment removes userID from a comment's like list.
func (c *Client) UnlikeComment(ctx context.Context, itemID, commentIndex, userID int) (*models.ResolvedComment, error) {
	var comment models.ResolvedComment
	path := fmt.Sprintf("/feeditem/%d/CommentThread/%d/likelist/%d", itemID, commentIndex, userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, "", &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateFeedItemText replaces a feed item's text and returns the
// resolved item. The body goes over the wire as plain text.
func (c *Client) UpdateFeedItemText(ctx context.Context, itemID int, text string) (*models.ResolvedFeedItem, error) {
	var item models.ResolvedFeedItem
	path := fmt.Sprintf("/feeditem/%d/content", itemID)
	if err := c.do(ctx, http.MethodPut, path, text, "text/plain", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteFeedItem removes a feed item and its references from every feed.
func (c *Client) DeleteFeedItem(ctx context.Context, itemID int) error {
	path := fmt.Sprintf("/feeditem/%d", itemID)
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// SearchFeedItems searches the client user's feed for the query text and
// returns the resolved matches.
func (c *Client) SearchFeedItems(ctx context.Context, query string) ([]models.ResolvedFeedItem, error) {
	var matches []models.ResolvedFeedItem
	if err := c.do(ctx, http.MethodPost, "/search", query, "text/plain", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// ResetDB restores the server's initial fixture state.
func (c *Client) ResetDB(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/resetdb", nil, "", nil)
}

// do issues one request. body may be nil, a string (sent verbatim), or
// any JSON-marshalable value; out, when non-nil, receives the decoded
// response body.
func (c *Client) do(ctx context.Context, method, path string, body any, contentType string, out any) error {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}
