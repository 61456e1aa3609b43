package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrSecretNotConfigured = errors.New("JWT secret not configured")

// TokenUser is the user block embedded in every token.
type TokenUser struct {
	ID string `json:"id"`
}

// UserClaims is the payload `{"user":{"id":...}}`. Tokens carry no expiry.
type UserClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 user tokens with a shared secret.
type TokenService struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}
	return &TokenService{secretKey: []byte(secret), now: time.Now}, nil
}

// Issue returns a signed token identifying userID.
func (s *TokenService) Issue(userID string) (string, error) {
	claims := UserClaims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature of tokenStr and returns the user id it carries.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	var claims UserClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.User.ID == "" {
		return "", fmt.Errorf("invalid token claims: missing user id")
	}
	return claims.User.ID, nil
}
