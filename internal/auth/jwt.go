package auth

import (
	"time"

	"lifetrack-backend/internal/config"
	"lifetrack-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type JWTCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(cfg *config.Config, person *models.Person) (string, error) {
	return generateToken(cfg, person, TokenTypeAccess, cfg.AccessTokenTTL)
}

func GenerateRefreshToken(cfg *config.Config, person *models.Person) (string, error) {
	return generateToken(cfg, person, TokenTypeRefresh, cfg.RefreshTokenTTL)
}

func generateToken(cfg *config.Config, person *models.Person, tokenType string, ttl time.Duration) (string, error) {
	claims := &JWTCustomClaims{
		UserID:    person.ID,
		Email:     person.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(cfg *config.Config, tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
