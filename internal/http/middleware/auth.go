package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"helishuttle/internal/domain"
	"helishuttle/internal/services"
)

const (
	adminClaimsKey = "admin_claims"
	AdminIDKey     = "adminId"
)

// TokenVerifier is implemented by services.AuthService.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (services.AdminClaims, error)
}

// AdminAuth requires a valid "Authorization: Bearer <token>" header.
func AdminAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := v.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if domain.IsUnauthorized(err) {
				abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			abortJSON(c, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		c.Set(adminClaimsKey, claims)
		c.Set(AdminIDKey, claims.AdminID)
		c.Next()
	}
}

// AdminClaims returns the claims stored by AdminAuth.
func AdminClaims(c *gin.Context) (services.AdminClaims, bool) {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return services.AdminClaims{}, false
	}
	claims, ok := v.(services.AdminClaims)
	return claims, ok
}
