package middleware

import (
	"strings"

	"leave-api/internal/apperror"
	"leave-api/internal/model"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenVerifier resolves a raw token to the identity it was issued for
type TokenVerifier interface {
	Verify(raw string) (*model.Identity, error)
}

// RequireAuth validates the bearer token and stores the identity in the context.
// The ?token= query parameter is accepted when no header is sent, since browsers
// cannot set headers on websocket upgrades.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := extractToken(c)
		if err != nil {
			abortWithError(c, err)
			return
		}

		identity, err := verifier.Verify(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := c.Query("token"); q != "" {
			return strings.TrimPrefix(q, "Bearer "), nil
		}
		return "", apperror.ErrUnauthenticated
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.ErrUnauthenticated
	}
	return strings.TrimSpace(parts[1]), nil
}

// CurrentIdentity returns the identity stored by RequireAuth
func CurrentIdentity(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*model.Identity)
	return identity, ok && identity != nil
}

// abortWithError stops the chain and leaves rendering to ErrorHandler
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
