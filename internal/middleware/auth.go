package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/formpulse/formpulse/internal/auth"
	"github.com/formpulse/formpulse/internal/dto"
)

// ContextUserIDKey is where the authenticated user's ID is stored in the gin
// context after RequireAuth has run.
const ContextUserIDKey = "userID"

// RequireAuth validates a Bearer token and puts the caller's user ID into the
// request context. Requests without a valid token are rejected with 401.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", c.FullPath()).Msg("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID reads the authenticated user's ID set by RequireAuth. The second
// return is false when the middleware did not run on this route.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
