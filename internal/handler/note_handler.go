package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/models"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

type noteService interface {
	ListMine(ctx context.Context, userID string) ([]models.Note, error)
	ExportPDF(ctx context.Context, noteID, userID string) ([]byte, string, error)
}

type noteLectureService interface {
	ListMine(ctx context.Context, userID string) ([]models.Lecture, error)
	Detail(ctx context.Context, id, userID string) (*models.LectureDetail, error)
}

// NoteHandler wires note reads and export to HTTP endpoints.
type NoteHandler struct {
	notes    noteService
	lectures noteLectureService
}

// NewNoteHandler constructs the handler.
func NewNoteHandler(notes noteService, lectures noteLectureService) *NoteHandler {
	return &NoteHandler{notes: notes, lectures: lectures}
}

// MyLectures godoc
// @Summary List the caller's lectures
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /notes/my-lectures [get]
func (h *NoteHandler) MyLectures(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	lectures, err := h.lectures.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lectures)
}

// MyNotes godoc
// @Summary List the caller's notes
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /notes/my-notes [get]
func (h *NoteHandler) MyNotes(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	notes, err := h.notes.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// LectureDetail godoc
// @Summary Lecture with its notes and documents
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Success 200 {object} response.Envelope
// @Router /notes/lecture/{id} [get]
func (h *NoteHandler) LectureDetail(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	detail, err := h.lectures.Detail(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// ExportPDF godoc
// @Summary Export a note as PDF
// @Tags Notes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {file} binary
// @Router /notes/{id}/export [get]
func (h *NoteHandler) ExportPDF(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	pdf, title, err := h.notes.ExportPDF(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", title+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
