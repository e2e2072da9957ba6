package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/models"
	"github.com/eduscribe/eduscribe-api/internal/service"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

type subjectService interface {
	Create(ctx context.Context, userID string, req service.CreateSubjectRequest) (*models.Subject, error)
	List(ctx context.Context, userID string) ([]models.Subject, error)
	Get(ctx context.Context, id, userID string) (*models.SubjectDetail, error)
	Update(ctx context.Context, id, userID string, patch models.SubjectPatch) error
	Delete(ctx context.Context, id, userID string) error
	Lectures(ctx context.Context, id, userID string) ([]models.Lecture, error)
}

// SubjectHandler wires subject use cases to HTTP endpoints.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(service subjectService) *SubjectHandler {
	return &SubjectHandler{service: service}
}

// Create godoc
// @Summary Create a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	subject, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// List godoc
// @Summary List the caller's subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	subjects, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// Get godoc
// @Summary Subject detail with its lectures
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Update godoc
// @Summary Partially update a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Param payload body models.SubjectPatch true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [put]
// @Router /subjects/{id} [patch]
func (h *SubjectHandler) Update(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	var patch models.SubjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), user.ID, patch); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// Delete godoc
// @Summary Delete a subject
// @Tags Subjects
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Success 204
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Lectures godoc
// @Summary List lectures within a subject
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/lectures [get]
func (h *SubjectHandler) Lectures(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	lectures, err := h.service.Lectures(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lectures)
}
