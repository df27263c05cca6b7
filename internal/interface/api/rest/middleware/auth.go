package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"file-exchange-api/internal/application/ports"
	"file-exchange-api/internal/application/services"
	"file-exchange-api/internal/domain/user"
)

const CtxUser = "user"

// AuthMiddleware resolves the bearer session token to a user record and
// stores it on the context. Role gates run in the handlers, against the
// user set here.
func AuthMiddleware(auth ports.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		u, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				c.AbortWithStatusJSON(
					http.StatusUnauthorized,
					gin.H{"error": "invalid token"},
				)
				return
			}
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"error": "internal server error"},
			)
			return
		}

		c.Set(CtxUser, u)

		c.Next()
	}
}

// CurrentUser returns the user AuthMiddleware attached to the context.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
