package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/monishpeddapally/hostel-management-system/models"
	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

const (
	staffIDKey = "staffID"
	roleKey    = "staffRole"
)

// TokenParser is the part of the auth service the gate needs.
type TokenParser interface {
	ParseToken(token string) (*services.StaffClaims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// staff id and role on the context.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "missing bearer token")
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(token))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "invalid or expired token")
			return
		}

		c.Set(staffIDKey, claims.StaffID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", "insufficient role")
	}
}

func StaffID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(staffIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func Role(c *gin.Context) (models.StaffRole, bool) {
	v, ok := c.Get(roleKey)
	if !ok {
		return "", false
	}
	r, ok := v.(models.StaffRole)
	return r, ok
}
