package middleware

import (
	"net/http"
	"strings"

	"github.com/fleet/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTCompanyIDKey = "jwt_company_id"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// JWTAuth creates JWT authentication middleware for the operator API.
// Webhook endpoints authenticate with the x-api-key header instead and
// never pass through here.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTCompanyIDKey, claims.CompanyID)
		c.Next()
	}
}

// GetJWTCompanyID returns the authenticated company ID from the context
func GetJWTCompanyID(c *gin.Context) string {
	return c.GetString(JWTCompanyIDKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
