package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/penpalhq/warden/core"
	"github.com/penpalhq/warden/service"
)

const contextSubjectKey = "subject"

// bearerToken strips an optional "Bearer " prefix from a header value.
// Prefix handling stays here so the engine never sees header formats.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

// AuthMiddleware creates middleware that gates requests on a live bearer
// credential. Rejections stay generic so the caller cannot tell revocation
// apart from ordinary invalidity.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		subject, err := authService.Validate(c.Request.Context(), strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			if errors.Is(err, core.ErrStoreUnavailable) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(contextSubjectKey, subject)

		c.Next()
	}
}
