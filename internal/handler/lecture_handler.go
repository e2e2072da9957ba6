package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/models"
	"github.com/eduscribe/eduscribe-api/internal/service"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

type lectureService interface {
	Create(ctx context.Context, userID string, req service.CreateLectureRequest) (*models.Lecture, error)
	Delete(ctx context.Context, id, userID string) error
	RegisterDocument(ctx context.Context, lectureID, userID string, req service.RegisterDocumentRequest) (*models.Document, error)
}

// LectureHandler wires lecture use cases to HTTP endpoints.
type LectureHandler struct {
	service lectureService
}

// NewLectureHandler constructs the handler.
func NewLectureHandler(service lectureService) *LectureHandler {
	return &LectureHandler{service: service}
}

// Create godoc
// @Summary Create a lecture in an owned subject
// @Tags Lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateLectureRequest true "Lecture payload"
// @Success 201 {object} response.Envelope
// @Router /lectures [post]
func (h *LectureHandler) Create(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	var req service.CreateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	lecture, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecture)
}

// Delete godoc
// @Summary Delete a lecture
// @Tags Lectures
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Success 204
// @Router /lectures/{id} [delete]
func (h *LectureHandler) Delete(c *gin.Context) {
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

// RegisterDocument godoc
// @Summary Register reference-document metadata for a lecture
// @Tags Lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Param payload body service.RegisterDocumentRequest true "Document metadata"
// @Success 201 {object} response.Envelope
// @Router /lectures/{id}/documents [post]
func (h *LectureHandler) RegisterDocument(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	var req service.RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	doc, err := h.service.RegisterDocument(c.Request.Context(), c.Param("id"), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}
