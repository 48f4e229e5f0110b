package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gatorkeys/config"
	appErrors "gatorkeys/pkg/errors"
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWTToken signs an HS256 access token for the user. The subject
// is the user id; expiry comes from config (hours).
func GenerateJWTToken(userID, email string, cfg config.Config) (string, error) {
	ttl := time.Duration(cfg.JWT.ExpiredIn) * time.Hour
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.JWT.Secret))
}

func ParseJWTToken(token string, cfg config.Config) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if c, ok := parsed.Claims.(*Claims); ok && parsed.Valid {
		return c, nil
	}
	return nil, appErrors.ErrInvalidToken
}
