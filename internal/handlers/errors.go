package handlers

import (
	"errors"
	"log"

	"github.com/dimitrije/notes/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

// respondError maps service errors to HTTP responses. Anything unrecognised is
// logged and reported as a 500 carrying fallback.
func respondError(c *drift.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound):
		c.NotFound("workspace not found")
	case errors.Is(err, services.ErrItemNotFound):
		c.NotFound("item not found")
	case errors.Is(err, services.ErrUserNotFound):
		c.NotFound("user not found")
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden("access denied")
	case errors.Is(err, services.ErrEmptyName):
		c.BadRequest("name is required")
	case errors.Is(err, services.ErrInvalidItemType):
		c.BadRequest("type must be document or folder")
	case errors.Is(err, services.ErrInvalidPreferences):
		c.BadRequest("invalid preferences")
	default:
		log.Printf("%s: %v", fallback, err)
		c.InternalServerError(fallback)
	}
}
