package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated user.
const ContextUserKey = "currentUser"

// AuthVerifier resolves a bearer token into a live user.
type AuthVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.UserInfo, error)
}

// JWT protects routes by requiring a valid bearer token. The token's subject
// is re-resolved against the user store on every request, so tokens for
// removed accounts never authenticate.
func JWT(authService AuthVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		user, err := authService.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by JWT, or nil.
func CurrentUser(c *gin.Context) *models.UserInfo {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.UserInfo)
	if !ok {
		return nil
	}
	return user
}
