package server

import (
	"mockbook/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /feeditem/:feeditemid/CommentThread. The body
// is a JSON contract with author and contents required; the response is the
// resolved parent item.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}

	var req struct {
		Author   *int    `json:"author"`
		Contents *string `json:"contents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Author == nil || req.Contents == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("author and contents are required"))
	}

	actor := s.actorID(c)
	resolved, postErr := s.engine.PostComment(actor, itemID, *req.Author, *req.Contents)
	if postErr != nil {
		return respondEngineError(c, postErr)
	}
	return c.Status(fiber.StatusCreated).JSON(resolved)
}

// LikeComment handles
// PUT /feeditem/:feeditemid/CommentThread/:commentindex/likelist/:userid and
// returns the resolved comment.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}
	idx, err := s.parseIndex(c, "commentindex", "comment index")
	if err != nil {
		return nil
	}
	target, err := s.parseID(c, "userid", "user ID")
	if err != nil {
		return nil
	}

	actor := s.actorID(c)
	comment, likeErr := s.engine.LikeComment(itemID, idx, actor, target)
	if likeErr != nil {
		return respondEngineError(c, likeErr)
	}
	return c.JSON(comment)
}

// UnlikeComment handles
// DELETE /feeditem/:feeditemid/CommentThread/:commentindex/likelist/:userid.
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "feeditemid", "feed item ID")
	if err != nil {
		return nil
	}
	idx, err := s.parseIndex(c, "commentindex", "comment index")
	if err != nil {
		return nil
	}
	target, err := s.parseID(c, "userid", "user ID")
	if err != nil {
		return nil
	}

	actor := s.actorID(c)
	comment, unlikeErr := s.engine.UnlikeComment(itemID, idx, actor, target)
	if unlikeErr != nil {
		return respondEngineError(c, unlikeErr)
	}
	return c.JSON(comment)
}
