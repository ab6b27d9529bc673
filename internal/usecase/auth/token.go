package auth

import (
	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenVerifier checks access tokens issued by the platform's auth service.
// Tokens are HS256-signed and carry the user's UUID in "user_id" or "sub".
type TokenVerifier struct {
	jwtSecret []byte
}

func NewTokenVerifier(jwtSecret string) *TokenVerifier {
	return &TokenVerifier{jwtSecret: []byte(jwtSecret)}
}

// VerifyToken verifies JWT token and returns user ID
func (v *TokenVerifier) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return v.jwtSecret, nil
	}, jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		userID, _ = claims.GetSubject()
	}
	if _, err := uuid.Parse(userID); err != nil {
		return "", domain.ErrInvalidToken
	}

	return userID, nil
}
