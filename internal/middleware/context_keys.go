package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context. Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// tenantIDKey is the key used to store the caller's tenant ID. Every
// business operation is scoped to it.
const tenantIDKey = contextKey("tenantID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetTenantIDFromContext retrieves the caller's tenant ID from the Gin
// context. It returns the tenant ID and whether it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(tenantIDKey); v != nil {
		if tenantID, ok := v.(string); ok {
			return tenantID, true
		}
	}
	return "", false
}
