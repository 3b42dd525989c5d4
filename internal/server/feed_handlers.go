package server

import (
	"fmt"

	"mockbook/internal/middleware"
	"mockbook/internal/seed"
	"mockbook/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /user/:userid/feed. A user may only read their own
// feed; the response is the fully resolved feed document.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userid", "user ID")
	if err != nil {
		return nil
	}

	if actor := s.actorID(c); actor != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("You can only read your own feed"))
	}

	resolved, err := s.resolver.ResolveFeed(userID)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(resolved)
}

// CreateFeedItem handles POST /feeditem. The body is a JSON contract with
// all fields required; the created raw item is returned with a Location
// header.
func (s *Server) CreateFeedItem(c *fiber.Ctx) error {
	var req struct {
		UserID   *int    `json:"userId"`
		Location *string `json:"location"`
		Contents *string `json:"contents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == nil || req.Location == nil || req.Contents == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId, location and contents are required"))
	}

	actor := s.actorID(c)
	item, err := s.engine.PostStatusUpdate(actor, *req.UserID, *req.Location, *req.Contents)
	if err != nil {
		return respondEngineError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/feeditem/%d", item.ID))
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateFeedItemContent handles PUT /feeditem/:feeditemid/content. The body
// is the raw replacement text.
func (s *Server) UpdateFeedItemContent(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}
	if !hasTextBody(c) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Request body must be plain text"))
	}

	actor := s.actorID(c)
	resolved, err := s.engine.UpdateItemText(itemID, actor, string(c.Body()))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(resolved)
}

// DeleteFeedItem handles DELETE /feeditem/:feeditemid.
func (s *Server) DeleteFeedItem(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}

	actor := s.actorID(c)
	if err := s.engine.DeleteItem(itemID, actor); err != nil {
		return respondEngineError(c, err)
	}
	// 200 with an empty body; SendStatus would fill in "OK".
	return c.Status(fiber.StatusOK).Send(nil)
}

// LikeFeedItem handles PUT /feeditem/:feeditemid/likelist/:userid and
// returns the resolved like list.
func (s *Server) LikeFeedItem(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}
	target, err := s.parseID(c, "userid", "user ID")
	if err != nil {
		return nil
	}

	actor := s.actorID(c)
	likes, likeErr := s.engine.LikeItem(itemID, actor, target)
	if likeErr != nil {
		return respondEngineError(c, likeErr)
	}
	return c.JSON(likes)
}

// UnlikeFeedItem handles DELETE /feeditem/:feeditemid/likelist/:userid.
// Unliking a user who never liked the item still succeeds.
func (s *Server) UnlikeFeedItem(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}
	target, err := s.parseID(c, "userid", "user ID")
	if err != nil {
		return nil
	}

	actor := s.actorID(c)
	likes, unlikeErr := s.engine.UnlikeItem(itemID, actor, target)
	if unlikeErr != nil {
		return respondEngineError(c, unlikeErr)
	}
	return c.JSON(likes)
}

// Search handles POST /search. The body is the raw query text; results are
// the resolved matching items from the actor's own feed.
func (s *Server) Search(c *fiber.Ctx) error {
	if !hasTextBody(c) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Request body must be plain text"))
	}

	actor := s.actorID(c)
	if actor < 0 {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	matches, err := s.engine.SearchFeedItems(actor, string(c.Body()))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(matches)
}

// ResetDB handles POST /resetdb: the store goes back to its initial fixture
// state. Test and dev support only.
func (s *Server) ResetDB(c *fiber.Ctx) error {
	middleware.Logger.InfoContext(c.UserContext(), "resetting db")
	s.store.Reset(seed.InitialData())
	return c.SendStatus(fiber.StatusOK)
}
