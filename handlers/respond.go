package handlers

import (
	"HavenCare/middlewares"
	"HavenCare/models"
	"errors"

	"github.com/gin-gonic/gin"
)

// statusForError maps the domain error kinds onto HTTP status codes so every
// handler reports them the same way.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return 400
	case errors.Is(err, models.ErrCoverageNotFound):
		return 404
	case errors.Is(err, models.ErrInvalidStateTransition):
		return 409
	case errors.Is(err, models.ErrConcurrentModification):
		return 409
	case errors.Is(err, models.ErrOverpaymentRejected):
		return 422
	case errors.Is(err, models.ErrBillingCodeInvalid):
		return 422
	default:
		return 500
	}
}

func handleServiceError(c *gin.Context, err error) {
	middlewares.HttpError(c, err.Error(), statusForError(err), err)
}

// actorFrom returns the authenticated user's ID for audit fields. Routes
// behind the token middleware always have one; the fallback only shows up in
// tests that call handlers directly.
func actorFrom(c *gin.Context) string {
	actor, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		return "system"
	}
	return actor
}
