package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/config"
)

// AuthMiddleware resolves the bearer token to a user and stores it in the
// request context. Development uses the local provider, everything else
// the remote one.
func AuthMiddleware(provider Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			var user *internal.User
			var err error
			if cfg.Env == "development" {
				user, err = provider.ValidateTokenLocal(token)
			} else {
				user, err = provider.ValidateTokenRemote(c.Request.Context(), token)
			}
			if err == nil {
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
