package feed

import (
	"testing"

	"mockbook/internal/store"
	"mockbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFeedItemShape(t *testing.T) {
	st := testStore()
	r := NewResolver(st)

	item, err := st.FeedItems.Read(1)
	require.NoError(t, err)

	resolved, err := r.ResolveFeedItem(item)
	require.NoError(t, err)

	assert.Equal(t, 1, resolved.ID)
	assert.Equal(t, models.FeedItemTypeStatusUpdate, resolved.Type)

	// Item-level likes become user documents, in order.
	require.Len(t, resolved.LikeCounter, 1)
	assert.Equal(t, "Alan Turing", resolved.LikeCounter[0].FullName)

	// The author reference becomes a user document; scalar fields carry over.
	assert.Equal(t, "Ada Lovelace", resolved.Contents.Author.FullName)
	assert.Equal(t, item.Contents.PostDate, resolved.Contents.PostDate)
	assert.Equal(t, item.Contents.Location, resolved.Contents.Location)
	assert.Equal(t, item.Contents.Contents, resolved.Contents.Contents)

	// Comment authors resolve; comment like counters stay raw ids.
	require.Len(t, resolved.Comments, 1)
	assert.Equal(t, "Alan Turing", resolved.Comments[0].Author.FullName)
	assert.Equal(t, []int{3}, resolved.Comments[0].LikeCounter)
}

func TestResolveFeedItemIsPure(t *testing.T) {
	st := testStore()
	r := NewResolver(st)

	first, err := r.ResolveFeedItemByID(1)
	require.NoError(t, err)
	second, err := r.ResolveFeedItemByID(1)
	require.NoError(t, err)

	// Resolving twice yields the same result; no mutation leaks back into
	// the store.
	assert.Equal(t, first, second)

	raw, err := st.FeedItems.Read(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, raw.LikeCounter)
	assert.Equal(t, 1, raw.Contents.Author)
}

func TestResolveFeedPreservesOrder(t *testing.T) {
	st := testStore()
	r := NewResolver(st)

	feed, err := r.ResolveFeed(1)
	require.NoError(t, err)

	assert.Equal(t, 1, feed.ID)
	require.Len(t, feed.Contents, 2)
	assert.Equal(t, 2, feed.Contents[0].ID)
	assert.Equal(t, 1, feed.Contents[1].ID)
}

func TestResolveFeedMissingUser(t *testing.T) {
	r := NewResolver(testStore())

	_, err := r.ResolveFeed(99)
	assert.True(t, store.IsNotFound(err))
}

func TestResolveFeedItemDanglingAuthorAborts(t *testing.T) {
	st := testStore()
	r := NewResolver(st)

	item, err := st.FeedItems.Read(1)
	require.NoError(t, err)
	item.Contents.Author = 99
	require.NoError(t, st.FeedItems.Write(item))

	_, err = r.ResolveFeedItemByID(1)
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
}

func TestResolveFeedItemDanglingLikeAborts(t *testing.T) {
	st := testStore()
	r := NewResolver(st)

	item, _ := st.FeedItems.Read(1)
	item.LikeCounter = append(item.LikeCounter, 99)
	require.NoError(t, st.FeedItems.Write(item))

	_, err := r.ResolveFeedItemByID(1)
	assert.True(t, store.IsNotFound(err))
}

func TestResolveLikeListEmpty(t *testing.T) {
	r := NewResolver(testStore())

	users, err := r.ResolveLikeList([]int{})
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
