package feed

import (
	"strings"
	"time"

	"mockbook/internal/store"
	"mockbook/models"
)

// Engine applies feed mutations against the document store and keeps the
// cross-references consistent: the author's feed index on create, and every
// feed's contents on delete. Mutations run to completion synchronously; all
// authorization happens before the first write.
type Engine struct {
	store    *store.Store
	resolver *Resolver
	gate     Gate

	// now is swappable for tests.
	now func() time.Time
}

// NewEngine creates an engine over the given store.
func NewEngine(st *store.Store) *Engine {
	return &Engine{
		store:    st,
		resolver: NewResolver(st),
		now:      time.Now,
	}
}

// Resolver returns the resolver the engine uses for outbound documents.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// PostStatusUpdate creates a feed item authored by userID and prepends it to
// that user's feed. The actor must be the claimed author. Returns the raw
// created item with its assigned id; the HTTP boundary serves it as-is.
func (e *Engine) PostStatusUpdate(actor, userID int, location, contents string) (*models.FeedItem, error) {
	if err := e.gate.CanPostAs(actor, userID); err != nil {
		return nil, err
	}

	user, err := e.store.Users.Read(userID)
	if err != nil {
		return nil, err
	}

	item := e.store.FeedItems.Add(&models.FeedItem{
		Type:        models.FeedItemTypeStatusUpdate,
		LikeCounter: []int{},
		Contents: models.StatusUpdate{
			Author:      userID,
			PostDate:    e.now().UnixMilli(),
			Location:    location,
			Contents:    contents,
			LikeCounter: []int{},
		},
		Comments: []models.Comment{},
	})

	feed, err := e.store.Feeds.Read(user.Feed)
	if err != nil {
		return nil, err
	}
	feed.Contents = append([]int{item.ID}, feed.Contents...)
	if err := e.store.Feeds.Write(feed); err != nil {
		return nil, err
	}

	return item, nil
}

// PostComment appends a comment by author to the item's comment thread and
// returns the resolved item. The actor must be the comment's author.
func (e *Engine) PostComment(actor, itemID, author int, contents string) (*models.ResolvedFeedItem, error) {
	if err := e.gate.CanPostAs(actor, author); err != nil {
		return nil, err
	}
	if _, err := e.store.Users.Read(author); err != nil {
		return nil, err
	}

	item, err := e.store.FeedItems.Read(itemID)
	if err != nil {
		return nil, err
	}
	item.Comments = append(item.Comments, models.Comment{
		Author:      author,
		Contents:    contents,
		PostDate:    e.now().UnixMilli(),
		LikeCounter: []int{},
	})
	if err := e.store.FeedItems.Write(item); err != nil {
		return nil, err
	}

	return e.resolver.ResolveFeedItem(item)
}

// UpdateItemText replaces the item's text. Only the author may edit; the
// post date, author, and like counters are untouched. Returns the resolved
// item.
func (e *Engine) UpdateItemText(itemID, actor int, newText string) (*models.ResolvedFeedItem, error) {
	item, err := e.store.FeedItems.Read(itemID)
	if err != nil {
		return nil, err
	}
	if err := e.gate.CanModifyItem(actor, item); err != nil {
		return nil, err
	}

	item.Contents.Contents = newText
	if err := e.store.FeedItems.Write(item); err != nil {
		return nil, err
	}
	return e.resolver.ResolveFeedItem(item)
}

// DeleteItem removes the item and sweeps every feed in the store, removing
// the item id wherever it appears. Creation writes one feed but shares can
// put an item in many feeds, so cleanup is deliberately broader than
// creation.
func (e *Engine) DeleteItem(itemID, actor int) error {
	item, err := e.store.FeedItems.Read(itemID)
	if err != nil {
		return err
	}
	if err := e.gate.CanModifyItem(actor, item); err != nil {
		return err
	}

	if err := e.store.FeedItems.Delete(itemID); err != nil {
		return err
	}

	for _, feed := range e.store.Feeds.All() {
		trimmed := feed.Contents[:0:0]
		for _, id := range feed.Contents {
			if id != itemID {
				trimmed = append(trimmed, id)
			}
		}
		if len(trimmed) == len(feed.Contents) {
			continue
		}
		feed.Contents = trimmed
		if err := e.store.Feeds.Write(feed); err != nil {
			return err
		}
	}
	return nil
}

// LikeItem adds target to the item's like counter if absent. Liking twice is
// a no-op. The actor may only like on their own behalf. Returns the resolved
// like list.
func (e *Engine) LikeItem(itemID, actor, target int) ([]models.User, error) {
	if err := e.gate.CanToggleLike(actor, target); err != nil {
		return nil, err
	}

	item, err := e.store.FeedItems.Read(itemID)
	if err != nil {
		return nil, err
	}
	if !item.HasLike(target) {
		item.LikeCounter = append(item.LikeCounter, target)
		if err := e.store.FeedItems.Write(item); err != nil {
			return nil, err
		}
	}
	return e.resolver.ResolveLikeList(item.LikeCounter)
}

// UnlikeItem removes target from the item's like counter. Unliking a user
// who never liked the item succeeds and changes nothing. Returns the
// resolved like list.
func (e *Engine) UnlikeItem(itemID, actor, target int) ([]models.User, error) {
	if err := e.gate.CanToggleLike(actor, target); err != nil {
		return nil, err
	}

	item, err := e.store.FeedItems.Read(itemID)
	if err != nil {
		return nil, err
	}
	if item.HasLike(target) {
		item.LikeCounter = removeID(item.LikeCounter, target)
		if err := e.store.FeedItems.Write(item); err != nil {
			return nil, err
		}
	}
	return e.resolver.ResolveLikeList(item.LikeCounter)
}

// LikeComment adds target to the like counter of the comment at
// commentIndex. Same idempotent semantics as LikeItem; an out-of-range index
// is a NotFound failure. Returns the resolved comment.
func (e *Engine) LikeComment(itemID, commentIndex, actor, target int) (*models.ResolvedComment, error) {
	if err := e.gate.CanToggleLike(actor, target); err != nil {
		return nil, err
	}

	item, comment, err := e.readComment(itemID, commentIndex)
	if err != nil {
		return nil, err
	}
	if !comment.HasLike(target) {
		comment.LikeCounter = append(comment.LikeCounter, target)
		if err := e.store.FeedItems.Write(item); err != nil {
			return nil, err
		}
	}
	return e.resolver.resolveComment(comment)
}

// UnlikeComment removes target from the comment's like counter, idempotent
// like UnlikeItem. Returns the resolved comment.
func (e *Engine) UnlikeComment(itemID, commentIndex, actor, target int) (*models.ResolvedComment, error) {
	if err := e.gate.CanToggleLike(actor, target); err != nil {
		return nil, err
	}

	item, comment, err := e.readComment(itemID, commentIndex)
	if err != nil {
		return nil, err
	}
	if comment.HasLike(target) {
		comment.LikeCounter = removeID(comment.LikeCounter, target)
		if err := e.store.FeedItems.Write(item); err != nil {
			return nil, err
		}
	}
	return e.resolver.resolveComment(comment)
}

// SearchFeedItems returns the items in the actor's own feed whose text
// contains queryText, case-insensitively, in feed order, resolved.
func (e *Engine) SearchFeedItems(actor int, queryText string) ([]models.ResolvedFeedItem, error) {
	user, err := e.store.Users.Read(actor)
	if err != nil {
		return nil, err
	}
	feed, err := e.store.Feeds.Read(user.Feed)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(queryText))
	matches := make([]models.ResolvedFeedItem, 0)
	for _, itemID := range feed.Contents {
		item, err := e.store.FeedItems.Read(itemID)
		if err != nil {
			return nil, err
		}
		if !strings.Contains(strings.ToLower(item.Contents.Contents), query) {
			continue
		}
		resolved, err := e.resolver.ResolveFeedItem(item)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *resolved)
	}
	return matches, nil
}

// readComment reads an item and addresses one of its comments by index.
func (e *Engine) readComment(itemID, commentIndex int) (*models.FeedItem, *models.Comment, error) {
	item, err := e.store.FeedItems.Read(itemID)
	if err != nil {
		return nil, nil, err
	}
	if commentIndex < 0 || commentIndex >= len(item.Comments) {
		return nil, nil, models.NewNotFoundError("comment", commentIndex)
	}
	return item, &item.Comments[commentIndex], nil
}

func removeID(ids []int, target int) []int {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
