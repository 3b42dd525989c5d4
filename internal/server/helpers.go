package server

import (
	"errors"
	"strings"

	"mockbook/internal/middleware"
	"mockbook/internal/store"
	"mockbook/models"
	"mockbook/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// actorID decodes the bearer credential into the acting user id. The
// sentinel token.Unauthenticated means no valid identity; handlers branch on
// it rather than on an error.
func (s *Server) actorID(c *fiber.Ctx) int {
	actor := token.Decode(c.Get(fiber.HeaderAuthorization))
	middleware.WithActor(c, actor)
	return actor
}

// parseID extracts a route parameter by name as a positive int.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, label string) (int, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return id, nil
}

// parseIndex extracts a route parameter as a non-negative comment index.
func (s *Server) parseIndex(c *fiber.Ctx, param, label string) (int, error) {
	idx, err := c.ParamsInt(param)
	if err != nil || idx < 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return idx, nil
}

// respondEngineError maps core errors onto the HTTP error taxonomy:
// authorization failures are 401, missing documents and out-of-range
// indexes are 404, everything else is a 500.
func respondEngineError(c *fiber.Ctx, err error) error {
	switch {
	case models.HasCode(err, models.CodeUnauthorized):
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	case store.IsNotFound(err), models.HasCode(err, models.CodeNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	case models.HasCode(err, models.CodeValidation):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.HasCode(err, models.CodeBadRequest):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
}

// hasTextBody reports whether the request carries a plain-text body, which
// the content-edit and search endpoints require.
func hasTextBody(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMETextPlain)
}
