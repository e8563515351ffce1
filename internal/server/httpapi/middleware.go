package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privafile/privafile/internal/common"
)

// userIDKey is the gin context key the auth middleware stores the
// verified user id under.
const userIDKey = "user_id"

// authRequired verifies the bearer token and stores the user id in the
// request context. Every failure mode maps to 401.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.authority.Authenticate(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": authFailureMessage(err),
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func authFailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrMissingCredential):
		return "missing Authorization header"
	case errors.Is(err, common.ErrMalformedCredential):
		return "invalid Authorization format, use: Bearer <token>"
	case errors.Is(err, common.ErrTokenExpired):
		return "token expired"
	default:
		return "invalid token"
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
