package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialDataIsDeterministic(t *testing.T) {
	assert.Equal(t, InitialData(), InitialData())
}

func TestInitialDataShape(t *testing.T) {
	d := InitialData()

	require.Len(t, d.Users, 4)
	require.Len(t, d.Feeds, 4)
	require.Len(t, d.FeedItems, 3)

	for i, u := range d.Users {
		assert.Equal(t, i+1, u.ID)
		assert.NotEmpty(t, u.FullName)
	}

	// Item 1 is the shared post with likes and a comment thread.
	item := d.FeedItems[0]
	assert.Equal(t, []int{1, 2}, item.LikeCounter)
	require.Len(t, item.Comments, 2)
	assert.Equal(t, []int{3}, item.Comments[0].LikeCounter)
}

func TestInitialDataReferentialIntegrity(t *testing.T) {
	d := InitialData()

	users := make(map[int]bool)
	for _, u := range d.Users {
		users[u.ID] = true
	}
	feeds := make(map[int]bool)
	for _, f := range d.Feeds {
		feeds[f.ID] = true
	}
	items := make(map[int]bool)
	for _, i := range d.FeedItems {
		items[i.ID] = true
	}

	for _, u := range d.Users {
		assert.True(t, feeds[u.Feed], "user %d references missing feed %d", u.ID, u.Feed)
	}
	for _, f := range d.Feeds {
		for _, id := range f.Contents {
			assert.True(t, items[id], "feed %d references missing item %d", f.ID, id)
		}
	}
	for _, item := range d.FeedItems {
		assert.True(t, users[item.Contents.Author], "item %d has missing author", item.ID)
		for _, id := range item.LikeCounter {
			assert.True(t, users[id], "item %d liked by missing user %d", item.ID, id)
		}
		for ci, c := range item.Comments {
			assert.True(t, users[c.Author], "item %d comment %d has missing author", item.ID, ci)
			for _, id := range c.LikeCounter {
				assert.True(t, users[id], "item %d comment %d liked by missing user %d", item.ID, ci, id)
			}
		}
	}
}

func TestInitialDataSharedItemAppearsInEveryFeed(t *testing.T) {
	d := InitialData()

	for _, f := range d.Feeds {
		assert.Contains(t, f.Contents, 1, "feed %d should carry the shared item", f.ID)
	}
}
