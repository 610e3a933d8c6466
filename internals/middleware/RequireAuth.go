package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-service/internals/service"
)

// AuthenticateMiddleware guards mutating routes. It expects an
// "Authorization: Bearer <token>" header, verifies the token, re-resolves the
// account, and stores it under "currentUser" for the handler.
func AuthenticateMiddleware(auth *service.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		user, err := auth.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Debug("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}
		c.Set("currentUser", user)
		c.Next()
	}
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
