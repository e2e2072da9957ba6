package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/middleware"
	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

// userFromContext extracts the authenticated user or writes a 401 response.
// Handlers must return immediately when ok is false.
func userFromContext(c *gin.Context) (*models.UserInfo, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return user, true
}
