package middleware

import (
	"net/http"
	"strings"

	"github.com/leaox77/Inventory-System-Backend/internal/apierror"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const claimsKey = "auth_claims"

// JWTAuth validates the Bearer token and stores its claims in the context.
func JWTAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token requerido"))
			return
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Refresh {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token invalido o expirado"))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequirePermission gates a route on one permission key. Superusers pass.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token requerido"))
			return
		}
		if !claims.Superuser && !claims.Permissions[perm] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("permiso insuficiente: "+perm))
			return
		}
		c.Next()
	}
}

// GetClaims returns the token claims stored by JWTAuth, or nil.
func GetClaims(c *gin.Context) *service.TokenClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.TokenClaims)
	return claims
}

// UserID extracts the authenticated user's id from the claims subject.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
