// Package feed contains the core of the backend: reference resolution,
// per-mutation authorization, and the feed mutation engine. It operates on
// raw documents from the store and produces resolved documents for
// responses.
package feed

import (
	"mockbook/internal/observability"
	"mockbook/internal/store"
	"mockbook/models"
)

// Resolver expands id references inside feed documents into embedded user
// documents. Resolution is read-only and all-or-nothing per feed item: any
// dangling user reference aborts that item with the store's NotFound error.
type Resolver struct {
	store *store.Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(st *store.Store) *Resolver {
	return &Resolver{store: st}
}

// ResolveFeedItem returns the resolved form of a raw feed item: the item
// like counter and all author references become user documents. Comment like
// counters intentionally stay raw ids.
func (r *Resolver) ResolveFeedItem(item *models.FeedItem) (*models.ResolvedFeedItem, error) {
	likes, err := r.ResolveLikeList(item.LikeCounter)
	if err != nil {
		return nil, err
	}

	author, err := r.store.Users.Read(item.Contents.Author)
	if err != nil {
		observability.ResolutionFailures.Inc()
		return nil, err
	}

	comments := make([]models.ResolvedComment, 0, len(item.Comments))
	for i := range item.Comments {
		resolved, err := r.resolveComment(&item.Comments[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, *resolved)
	}

	return &models.ResolvedFeedItem{
		ID:          item.ID,
		Type:        item.Type,
		LikeCounter: likes,
		Contents: models.ResolvedStatusUpdate{
			Author:      *author,
			PostDate:    item.Contents.PostDate,
			Location:    item.Contents.Location,
			Contents:    item.Contents.Contents,
			LikeCounter: append([]int{}, item.Contents.LikeCounter...),
		},
		Comments: comments,
	}, nil
}

// ResolveFeedItemByID reads the item from the store and resolves it.
func (r *Resolver) ResolveFeedItemByID(itemID int) (*models.ResolvedFeedItem, error) {
	item, err := r.store.FeedItems.Read(itemID)
	if err != nil {
		return nil, err
	}
	return r.ResolveFeedItem(item)
}

// ResolveFeed loads the user's feed and resolves every contained item,
// preserving feed order.
func (r *Resolver) ResolveFeed(userID int) (*models.ResolvedFeed, error) {
	user, err := r.store.Users.Read(userID)
	if err != nil {
		return nil, err
	}
	rawFeed, err := r.store.Feeds.Read(user.Feed)
	if err != nil {
		return nil, err
	}

	items := make([]models.ResolvedFeedItem, 0, len(rawFeed.Contents))
	for _, itemID := range rawFeed.Contents {
		resolved, err := r.ResolveFeedItemByID(itemID)
		if err != nil {
			return nil, err
		}
		items = append(items, *resolved)
	}

	return &models.ResolvedFeed{ID: rawFeed.ID, Contents: items}, nil
}

// ResolveLikeList maps a like counter's user ids to user documents, lookup
// order preserved.
func (r *Resolver) ResolveLikeList(userIDs []int) ([]models.User, error) {
	users := make([]models.User, 0, len(userIDs))
	for _, id := range userIDs {
		user, err := r.store.Users.Read(id)
		if err != nil {
			observability.ResolutionFailures.Inc()
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// resolveComment resolves a single comment's author reference.
func (r *Resolver) resolveComment(comment *models.Comment) (*models.ResolvedComment, error) {
	author, err := r.store.Users.Read(comment.Author)
	if err != nil {
		observability.ResolutionFailures.Inc()
		return nil, err
	}
	return &models.ResolvedComment{
		Author:      *author,
		Contents:    comment.Contents,
		PostDate:    comment.PostDate,
		LikeCounter: append([]int{}, comment.LikeCounter...),
	}, nil
}
