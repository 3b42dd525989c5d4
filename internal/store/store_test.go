package store

import (
	"testing"

	"mockbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionAddAssignsSequentialIDs(t *testing.T) {
	users := NewCollection[*models.User]("users")

	first := users.Add(&models.User{FullName: "Ada Lovelace", Feed: 1})
	second := users.Add(&models.User{FullName: "Alan Turing", Feed: 2})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 2, users.Len())
}

func TestCollectionReadMissingReturnsNotFound(t *testing.T) {
	users := NewCollection[*models.User]("users")

	_, err := users.Read(99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "users")
}

func TestCollectionWriteRequiresExistingDocument(t *testing.T) {
	users := NewCollection[*models.User]("users")

	err := users.Write(&models.User{ID: 5, FullName: "Nobody"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	stored := users.Add(&models.User{FullName: "Ada Lovelace", Feed: 1})
	stored.FullName = "Ada King"
	require.NoError(t, users.Write(stored))

	got, err := users.Read(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", got.FullName)
}

func TestCollectionDelete(t *testing.T) {
	users := NewCollection[*models.User]("users")
	stored := users.Add(&models.User{FullName: "Ada Lovelace", Feed: 1})

	require.NoError(t, users.Delete(stored.ID))
	assert.Equal(t, 0, users.Len())

	err := users.Delete(stored.ID)
	assert.True(t, IsNotFound(err))
}

func TestCollectionIsolatesStoredState(t *testing.T) {
	feeds := NewCollection[*models.Feed]("feeds")
	stored := feeds.Add(&models.Feed{Contents: []int{1, 2, 3}})

	// Mutating the returned copy must not change the stored document.
	stored.Contents[0] = 999
	stored.Contents = append(stored.Contents, 4)

	got, err := feeds.Read(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got.Contents)

	// Mutating a second read must not affect a third.
	first, _ := feeds.Read(stored.ID)
	first.Contents[1] = -1
	second, _ := feeds.Read(stored.ID)
	assert.Equal(t, []int{1, 2, 3}, second.Contents)
}

func TestCollectionAddDoesNotAliasInput(t *testing.T) {
	items := NewCollection[*models.FeedItem]("feedItems")

	input := &models.FeedItem{
		Type:        models.FeedItemTypeStatusUpdate,
		LikeCounter: []int{1},
		Comments:    []models.Comment{},
	}
	stored := items.Add(input)

	input.LikeCounter[0] = 42
	input.Contents.Contents = "changed after add"

	got, err := items.Read(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.LikeCounter)
	assert.Empty(t, got.Contents.Contents)
}

func TestCollectionAll(t *testing.T) {
	feeds := NewCollection[*models.Feed]("feeds")
	a := feeds.Add(&models.Feed{Contents: []int{1}})
	b := feeds.Add(&models.Feed{Contents: []int{2}})

	all := feeds.All()
	require.Len(t, all, 2)
	assert.Equal(t, []int{1}, all[a.ID].Contents)
	assert.Equal(t, []int{2}, all[b.ID].Contents)

	// The returned map holds copies.
	all[a.ID].Contents[0] = 999
	got, _ := feeds.Read(a.ID)
	assert.Equal(t, []int{1}, got.Contents)
}

func TestStoreResetAdvancesIDCounter(t *testing.T) {
	st := New()
	st.Reset(&Data{
		Users: []*models.User{
			{ID: 1, FullName: "Ada Lovelace", Feed: 1},
			{ID: 7, FullName: "Alan Turing", Feed: 2},
		},
		Feeds:     []*models.Feed{{ID: 1}, {ID: 2}},
		FeedItems: []*models.FeedItem{},
	})

	added := st.Users.Add(&models.User{FullName: "Grace Hopper", Feed: 3})
	assert.Equal(t, 8, added.ID)
}

func TestStoreResetReplacesContents(t *testing.T) {
	st := New()
	st.Users.Add(&models.User{FullName: "Leftover"})

	st.Reset(&Data{
		Users:     []*models.User{{ID: 1, FullName: "Ada Lovelace", Feed: 1}},
		Feeds:     []*models.Feed{{ID: 1, Contents: []int{}}},
		FeedItems: []*models.FeedItem{},
	})

	assert.Equal(t, 1, st.Users.Len())
	got, err := st.Users.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, 0, st.FeedItems.Len())
}
