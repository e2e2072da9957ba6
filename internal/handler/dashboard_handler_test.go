package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eduscribe/eduscribe-api/internal/middleware"
	"github.com/eduscribe/eduscribe-api/internal/models"
	"github.com/eduscribe/eduscribe-api/internal/service"
)

type fakeDashboardSrv struct {
	stats    *models.DashboardStats
	cacheHit bool
	err      error
	lastUser string
}

func (f *fakeDashboardSrv) Stats(_ context.Context, userID string) (*models.DashboardStats, bool, error) {
	f.lastUser = userID
	return f.stats, f.cacheHit, f.err
}

func TestDashboardHandlerStatsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{}, service.NewMetricsService())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardHandlerStatsSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{
		stats:    &models.DashboardStats{SubjectCount: 2, LectureCount: 5},
		cacheHit: true,
	}
	handler := NewDashboardHandler(srv, service.NewMetricsService())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	c.Set(middleware.ContextUserKey, &models.UserInfo{ID: "u1"})

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", srv.lastUser)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(2), envelope.Data["subject_count"])
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}
