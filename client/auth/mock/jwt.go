package mock

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

const (
	accessTokenType  = "access_token"
	refreshTokenType = "refresh_token"
)

type claims struct {
	jwt.RegisteredClaims
	Type       string `json:"typ"`
	Generation int    `json:"gen"`
}

// createJWT creates a signed token for email with the given type and expiry
func (s *Service) createJWT(u *user, tokenType string, expiry time.Duration) (string, string, error) {
	now := time.Now()
	id := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Type:       tokenType,
		Generation: u.generation,
	})
	signed, err := token.SignedString(s.Secret)
	return signed, id, err
}

func (s *Service) parseJWT(tokenString, tokenType string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	ret, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if ret.Type != tokenType {
		return nil, fmt.Errorf("expected %v, got %v", tokenType, ret.Type)
	}
	return ret, nil
}
