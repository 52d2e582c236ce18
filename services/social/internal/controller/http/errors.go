package http

import (
	"errors"
	"net/http"

	"fun123/services/social/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError writes the status matching err. Unrecognized errors are 500s
// carrying the usecase's sanitized message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrConflict),
		errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, entity.ErrInvalidToken),
		errors.Is(err, entity.ErrUnknownKind),
		errors.Is(err, entity.ErrNoCast),
		errors.Is(err, entity.ErrSelfUnfollow):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
