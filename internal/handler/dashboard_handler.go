package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduscribe/eduscribe-api/internal/middleware"
	"github.com/eduscribe/eduscribe-api/internal/models"
	"github.com/eduscribe/eduscribe-api/internal/service"
	"github.com/eduscribe/eduscribe-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context, userID string) (*models.DashboardStats, bool, error)
}

// DashboardHandler wires dashboard statistics to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
	metrics *service.MetricsService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc dashboardService, metrics *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{service: svc, metrics: metrics}
}

// Stats godoc
// @Summary Per-user dashboard statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		return
	}

	start := time.Now()
	stats, cacheHit, err := h.service.Stats(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.RecordCacheOperation(cacheHit)
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, stats, meta)
}
