package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eduscribe/eduscribe-api/internal/middleware"
	"github.com/eduscribe/eduscribe-api/internal/models"
	"github.com/eduscribe/eduscribe-api/internal/service"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
)

type fakeSubjectSrv struct {
	subject   *models.Subject
	detail    *models.SubjectDetail
	lectures  []models.Lecture
	err       error
	lastPatch models.SubjectPatch
}

func (f *fakeSubjectSrv) Create(context.Context, string, service.CreateSubjectRequest) (*models.Subject, error) {
	return f.subject, f.err
}

func (f *fakeSubjectSrv) List(context.Context, string) ([]models.Subject, error) {
	if f.subject == nil {
		return nil, f.err
	}
	return []models.Subject{*f.subject}, f.err
}

func (f *fakeSubjectSrv) Get(context.Context, string, string) (*models.SubjectDetail, error) {
	return f.detail, f.err
}

func (f *fakeSubjectSrv) Update(_ context.Context, _, _ string, patch models.SubjectPatch) error {
	f.lastPatch = patch
	return f.err
}

func (f *fakeSubjectSrv) Delete(context.Context, string, string) error {
	return f.err
}

func (f *fakeSubjectSrv) Lectures(context.Context, string, string) ([]models.Lecture, error) {
	return f.lectures, f.err
}

func authedContext(rec *httptest.ResponseRecorder, req *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.UserInfo{ID: "u1"})
	return c
}

func TestSubjectHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubjectHandler(&fakeSubjectSrv{subject: &models.Subject{ID: "s1", Name: "Physics"}})

	rec := httptest.NewRecorder()
	c := authedContext(rec, jsonRequest(http.MethodPost, "/subjects", service.CreateSubjectRequest{Name: "Physics", Code: "PHY101"}))

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubjectHandlerCreateUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubjectHandler(&fakeSubjectSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/subjects", service.CreateSubjectRequest{Name: "Physics", Code: "PHY101"})

	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubjectHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubjectHandler(&fakeSubjectSrv{err: appErrors.Clone(appErrors.ErrNotFound, "subject not found")})

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodGet, "/subjects/s1", nil))
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubjectHandlerUpdateEmptyPatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubjectHandler(&fakeSubjectSrv{err: appErrors.Clone(appErrors.ErrValidation, "no updates provided")})

	rec := httptest.NewRecorder()
	c := authedContext(rec, jsonRequest(http.MethodPatch, "/subjects/s1", map[string]string{}))
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Update(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubjectHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubjectHandler(&fakeSubjectSrv{})

	rec := httptest.NewRecorder()
	c := authedContext(rec, httptest.NewRequest(http.MethodDelete, "/subjects/s1", nil))
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
