package http

import (
	"net/http"

	"fun123/pkg/middleware"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

const contextCaller = "caller"

// CallerMiddleware loads the authenticated user and records activity. It
// runs after middleware.AuthMiddleware.
func CallerMiddleware(authUseCase usecase.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)
		if userID == "" {
			unauthorized(c)
			c.Abort()
			return
		}

		user, err := authUseCase.GetUser(c.Request.Context(), userID)
		if err != nil {
			unauthorized(c)
			c.Abort()
			return
		}

		// last_seen is best effort; TouchActivity logs its own failures
		if err := authUseCase.TouchActivity(c.Request.Context(), user.ID); err != nil {
			_ = c.Error(err)
		}

		c.Set(contextCaller, user)
		c.Next()
	}
}

// RequirePermission rejects callers whose role lacks p.
func RequirePermission(p entity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := callerFrom(c)
		if caller == nil {
			unauthorized(c)
			c.Abort()
			return
		}
		if !caller.Can(p) {
			c.JSON(http.StatusForbidden, gin.H{"error": entity.ErrForbidden.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) *entity.User {
	v, ok := c.Get(contextCaller)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}
