package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"formfiller/services"
	"formfiller/utils"
)

const ClientKey = "client"

// TokenValidator checks bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// JWTAuth requires a valid "Authorization: Bearer <token>" header. A nil validator
// leaves the route open.
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validator == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			utils.UnauthorizedError(c, "Authorization required.")
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			utils.UnauthorizedError(c, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set(ClientKey, claims.Client)
		c.Next()
	}
}
