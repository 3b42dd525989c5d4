// Package seed builds the initial fixture the store is reset to. The shape
// is fixed so tests and the resetdb endpoint are deterministic; filler
// content comes from gofakeit with a pinned seed.
package seed

import (
	"mockbook/internal/store"
	"mockbook/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Timestamps used by the fixture items, oldest first. Fixed so resetdb
// always produces the same documents.
const (
	fixtureEpochMillis = int64(1453668480000)
	fixtureStepMillis  = int64(3600000)
)

// InitialData returns the fixture the store starts from and resets to:
// four users with one feed each, and three status updates. The first item is
// referenced by every feed (a shared post), which is what the delete sweep
// has to clean up.
func InitialData() *store.Data {
	faker := gofakeit.New(11)

	users := make([]*models.User, 0, 4)
	feeds := make([]*models.Feed, 0, 4)
	for id := 1; id <= 4; id++ {
		users = append(users, &models.User{ID: id, FullName: faker.Name(), Feed: id})
	}

	items := []*models.FeedItem{
		statusUpdate(1, 3, faker.City(), faker.HipsterSentence(8)),
		statusUpdate(2, 4, faker.City(), faker.HipsterSentence(6)),
		statusUpdate(3, 1, faker.City(), faker.HipsterSentence(10)),
	}

	// Item 1 carries likes and a comment thread so the resolver and the
	// comment endpoints have something to work with out of the box.
	items[0].LikeCounter = []int{1, 2}
	items[0].Comments = []models.Comment{
		{
			Author:      2,
			Contents:    faker.HipsterSentence(5),
			PostDate:    fixtureEpochMillis + fixtureStepMillis/2,
			LikeCounter: []int{3},
		},
		{
			Author:      4,
			Contents:    faker.HipsterSentence(4),
			PostDate:    fixtureEpochMillis + fixtureStepMillis,
			LikeCounter: []int{},
		},
	}

	feeds = append(feeds,
		&models.Feed{ID: 1, Contents: []int{3, 2, 1}},
		&models.Feed{ID: 2, Contents: []int{1}},
		&models.Feed{ID: 3, Contents: []int{1}},
		&models.Feed{ID: 4, Contents: []int{2, 1}},
	)

	return &store.Data{Users: users, Feeds: feeds, FeedItems: items}
}

func statusUpdate(id, author int, location, contents string) *models.FeedItem {
	return &models.FeedItem{
		ID:          id,
		Type:        models.FeedItemTypeStatusUpdate,
		LikeCounter: []int{},
		Contents: models.StatusUpdate{
			Author:      author,
			PostDate:    fixtureEpochMillis + int64(id-1)*fixtureStepMillis,
			Location:    location,
			Contents:    contents,
			LikeCounter: []int{},
		},
		Comments: []models.Comment{},
	}
}
