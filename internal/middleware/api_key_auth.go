package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimbus-rentals/service-rental/internal/auth"
)

const (
	apiKeyHeader       = "X-API-Key"
	contextIdentityKey = "identity"
)

// APIKeyAuthMiddleware resolves the X-API-Key header against the configured
// key table and attaches the resulting identity to the request context.
// Requests with a missing or unknown key are rejected with 401 before
// reaching any handler.
func APIKeyAuthMiddleware(keys map[string]auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":       http.StatusUnauthorized,
				"message":    "Missing X-API-Key header",
				"error_type": "Unauthorized",
			})
			return
		}

		identity, ok := keys[key]
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":       http.StatusUnauthorized,
				"message":    "Invalid API key",
				"error_type": "Unauthorized",
			})
			return
		}

		c.Set(contextIdentityKey, identity)
		c.Next()
	}
}

// RequireRole restricts a route to the listed roles. It assumes
// APIKeyAuthMiddleware ran earlier in the chain.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !allowed[identity.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":       http.StatusForbidden,
				"message":    "Insufficient permissions",
				"error_type": "Forbidden",
			})
			return
		}
		c.Next()
	}
}

// GetIdentity extracts the authenticated identity from the request context.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(contextIdentityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
