package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAccessCode checks the Authorization header against the shared
// access code. The bearer token is the literal code, not a signed
// credential. Websocket clients may pass it as a token query parameter
// instead, since browsers cannot set headers on websocket upgrades.
func RequireAccessCode(accessCode string) gin.HandlerFunc {
	expected := "Bearer " + accessCode
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == expected || c.Query("token") == accessCode {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication code"})
	}
}
