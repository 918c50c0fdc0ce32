package auth

import "github.com/gin-gonic/gin"

// Context keys written by AuthRequired.
const (
	ctxUserIDKey    = "userID"
	ctxUserEmailKey = "userEmail"
)

// GetUserID returns the authenticated user's ID, or an empty string when the
// request carries no valid identity.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

// GetUserEmail returns the authenticated user's email, or an empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmailKey)
}
