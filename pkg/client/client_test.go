package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mockbook/models"
	"mockbook/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(models.ResolvedFeed{ID: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, 4)
	_, err := c.Feed(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token.Encode(4), gotAuth)
}

func TestPostStatusUpdateSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/feeditem", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["userId"])
		assert.Equal(t, "Santa Monica", body["location"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.FeedItem{ID: 7, Type: models.FeedItemTypeStatusUpdate})
	}))
	defer srv.Close()

	c := New(srv.URL, 4)
	item, err := c.PostStatusUpdate(context.Background(), 4, "Santa Monica", "hello")
	require.NoError(t, err)
	assert.Equal(t, 7, item.ID)
}

func TestSearchSendsPlainTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode([]models.ResolvedFeedItem{{ID: 2}})
	}))
	defer srv.Close()

	c := New(srv.URL, 1)
	matches, err := c.SearchFeedItems(context.Background(), "beacon")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].ID)
}

func TestNon2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"nope","code":"UNAUTHORIZED"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5)
	_, err := c.Feed(context.Background(), 4)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "UNAUTHORIZED")
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	// Nothing listens here; the dial fails before any HTTP exchange.
	c := New("http://127.0.0.1:1", 1)

	_, err := c.Feed(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestTimeoutSurfacesAsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewWithHTTPClient(srv.URL, 1, &http.Client{Timeout: 20 * time.Millisecond})
	_, err := c.Feed(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestLikeAndCommentPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/feeditem/1/likelist/2":
			_ = json.NewEncoder(w).Encode([]models.User{{ID: 2}})
		default:
			_ = json.NewEncoder(w).Encode(models.ResolvedComment{LikeCounter: []int{2}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, 2)
	ctx := context.Background()

	likes, err := c.LikeFeedItem(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, likes, 1)

	_, err = c.UnlikeFeedItem(ctx, 1, 2)
	require.NoError(t, err)

	comment, err := c.LikeComment(ctx, 1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, comment.LikeCounter)

	_, err = c.UnlikeComment(ctx, 1, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PUT /feeditem/1/likelist/2",
		"DELETE /feeditem/1/likelist/2",
		"PUT /feeditem/1/CommentThread/0/likelist/2",
		"DELETE /feeditem/1/CommentThread/0/likelist/2",
	}, paths)
}

func TestDeleteAndResetAcceptEmptyBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 3)
	require.NoError(t, c.DeleteFeedItem(context.Background(), 1))
	require.NoError(t, c.ResetDB(context.Background()))
}
