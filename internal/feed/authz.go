package feed

import (
	"mockbook/internal/observability"
	"mockbook/models"
	"mockbook/pkg/token"
)

// Gate performs the per-operation actor checks that run before every
// mutation. All checks are stateless comparisons of the token-derived actor
// id against the id the operation requires; a failed check means the store
// is never touched.
type Gate struct{}

// CanPostAs allows posting a status update or comment only when the actor is
// the claimed author.
func (Gate) CanPostAs(actor, author int) error {
	return requireActor("post", actor, author)
}

// CanModifyItem allows editing or deleting a feed item only by its author.
func (Gate) CanModifyItem(actor int, item *models.FeedItem) error {
	return requireActor("modify_item", actor, item.Contents.Author)
}

// CanToggleLike allows adding or removing a like only on the actor's own
// behalf.
func (Gate) CanToggleLike(actor, target int) error {
	return requireActor("toggle_like", actor, target)
}

func requireActor(operation string, actor, required int) error {
	if actor == token.Unauthenticated || actor != required {
		observability.AuthorizationRejections.WithLabelValues(operation).Inc()
		return models.NewUnauthorizedError("authenticated user does not match the required actor")
	}
	return nil
}
