package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/jwt"
	"github.com/jotterhq/jotter/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "user_email"
)

// JWTAuth rejects requests without a valid bearer token and stashes the
// caller identity on the context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, errcode.ErrUnauthorized, "missing token")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
