package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// TokenVerifier is the slice of *auth.Client the middleware needs, narrowed
// so tests can fake the provider.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware verifies the Bearer token with the auth provider and puts
// uid, email and role into the request context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New(utils.MapAuthError(err)))
			c.Abort()
			return
		}

		c.Set("uid", token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set("email", email)
		}
		c.Set("role", RoleFromClaims(token.Claims))

		c.Next()
	}
}

// RoleFromClaims reads the custom "admin" claim set by the admin tooling.
func RoleFromClaims(claims map[string]interface{}) string {
	if isAdmin, ok := claims["admin"].(bool); ok && isAdmin {
		return "admin"
	}
	return "customer"
}
