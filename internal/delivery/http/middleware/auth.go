package middleware

import (
	"net/http"
	"strings"

	"github.com/gdugdh24/expo-networking/internal/delivery/http/handler"
	"github.com/gin-gonic/gin"
)

type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's ID under "user_id".
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{
				Error: "authorization header missing or invalid",
			})
			return
		}

		userID, err := m.verifier.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ErrorResponse{
				Error: "invalid token",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
