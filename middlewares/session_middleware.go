package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/wildeats-cart/utils"
)

// Context keys set by the session middlewares.
const (
	ContextSessionID = "session_id"
	ContextTokenExp  = "token_expires"
)

// SessionAuth requires "Authorization: Bearer <session token>".
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization format"))
			c.Abort()
			return
		}

		authorize(c, strings.TrimPrefix(authHeader, "Bearer "))
	}
}

// WebSocketSessionAuth takes the token from the query string, since browsers
// cannot set headers on a websocket handshake.
func WebSocketSessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		authorize(c, token)
	}
}

func authorize(c *gin.Context, token string) {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		c.Abort()
		return
	}

	c.Set(ContextSessionID, claims.SessionID)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExp, claims.ExpiresAt.Time)
	}
	c.Next()
}

// SessionID returns the session set by SessionAuth, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
