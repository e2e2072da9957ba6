package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/service"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

type synthesisService interface {
	Synthesize(ctx context.Context, lectureID, userID string, req service.SynthesizeRequest) (*service.SynthesizeResult, error)
	DetectTopicShift(req service.TopicShiftRequest) bool
}

// SynthesisHandler wires note synthesis to HTTP endpoints.
type SynthesisHandler struct {
	service synthesisService
	metrics *service.MetricsService
}

// NewSynthesisHandler constructs the handler.
func NewSynthesisHandler(svc synthesisService, metrics *service.MetricsService) *SynthesisHandler {
	return &SynthesisHandler{service: svc, metrics: metrics}
}

// Synthesize godoc
// @Summary Synthesize lecture notes from transcription
// @Tags Synthesis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID"
// @Param payload body service.SynthesizeRequest true "Transcription material"
// @Success 201 {object} response.Envelope
// @Router /lectures/{id}/synthesize [post]
func (h *SynthesisHandler) Synthesize(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	var req service.SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	result, err := h.service.Synthesize(c.Request.Context(), c.Param("id"), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.RecordSynthesis(result.Note.Source)
	response.Created(c, result)
}

// TopicShift godoc
// @Summary Detect a topic shift in live transcription
// @Tags Synthesis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.TopicShiftRequest true "Current and previous transcription"
// @Success 200 {object} response.Envelope
// @Router /synthesis/topic-shift [post]
func (h *SynthesisHandler) TopicShift(c *gin.Context) {
	if _, ok := userFromContext(c); !ok {
		return
	}

	var req service.TopicShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	shift := h.service.DetectTopicShift(req)
	response.JSON(c, http.StatusOK, gin.H{"topic_shift": shift})
}
