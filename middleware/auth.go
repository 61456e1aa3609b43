package middleware

import (
	"net/http"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// TokenHeader carries the raw token, without a Bearer prefix.
	TokenHeader    = "auth-token"
	UserContextKey = "userID"
)

// TokenVerifier returns the user id carried by a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid auth-token header and
// stores the authenticated user id in the context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			abortUnauthorized(c, apperrors.ErrMissingToken)
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			zap.L().Debug("token rejected", zap.Error(err))
			abortUnauthorized(c, apperrors.Wrap(apperrors.ErrInvalidToken, err))
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// abortUnauthorized answers every auth failure with the same body so callers
// cannot tell a missing token from a forged one.
func abortUnauthorized(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": apperrors.ErrMissingToken.Message})
}

// GetUserID returns the id stored by AuthMiddleware.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
