package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/models"
	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	userIDKey    = "userId"
)

// Authenticator resolves an access token to a stored user
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

// Authenticate attaches the caller's principal to the request. Requests
// without an Authorization header continue anonymously; a header that
// does not carry a valid bearer token for an existing user is rejected
// with 401.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(principalKey, &authz.Principal{ID: user.ID, Role: user.Role})
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// Principal returns the caller's principal, or nil for anonymous requests
func Principal(c *gin.Context) *authz.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}
