package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	users "moviechamp/src/modules/users/services"
	"moviechamp/src/utils"
)

const (
	ctxUserID = "userId"
	ctxRole   = "userRole"
)

// RequireAuth validates the bearer token and stores the caller's identity
// on the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.Fail(c, utils.Unauthorized("Authorization token is required"))
			c.Abort()
			return
		}

		claims, err := users.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.Fail(c, utils.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != "ADMIN" {
			utils.Fail(c, utils.Forbidden("Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, empty when the route
// ran without RequireAuth.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
