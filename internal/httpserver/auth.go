package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bakeshop/internal/auth"
)

const claimsKey = "authClaims"

// authRequired verifies the bearer token and stores the resulting claims
// on the request context.
func authRequired(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if idToken == "" {
			respondError(c, http.StatusUnauthorized, "empty bearer token")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), idToken)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// adminRequired gates admin routes on the verified admin claim. It must
// run after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || !claims.Admin {
			respondError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
