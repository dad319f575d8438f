package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the request-context key for the authenticated operator's id,
// set by AuthMiddleware.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user id placed in the request
// context by AuthMiddleware, and whether one is present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
