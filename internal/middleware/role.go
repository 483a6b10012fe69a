package middleware

import (
	"fmt"
	"slices"
	"strings"

	"leave-api/internal/apperror"
	"leave-api/internal/model"

	"github.com/gin-gonic/gin"
)

// Authorize checks the identity's role claim against the allowed roles.
// Comparison is exact, so claims must already be uppercased.
func Authorize(identity *model.Identity, allowedRoles ...string) error {
	if identity == nil {
		return apperror.ErrUnauthenticated
	}
	if identity.Role == "" {
		return apperror.ErrNoRoleClaim
	}
	if !slices.Contains(allowedRoles, identity.Role) {
		return apperror.Forbidden(fmt.Sprintf("Forbidden: You do not have the required permissions (%s)", strings.Join(allowedRoles, " or ")))
	}
	return nil
}

// RequireRole must run after RequireAuth
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		if err := Authorize(identity, allowedRoles...); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
