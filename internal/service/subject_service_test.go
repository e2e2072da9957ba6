package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
)

type mockSubjectRepo struct {
	subjects      map[string]*models.Subject
	updateCalled  bool
	updateMatched bool
	deleteMatched bool
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*models.Subject)}
}

func (m *mockSubjectRepo) ListByOwner(ctx context.Context, userID string) ([]models.Subject, error) {
	var out []models.Subject
	for _, s := range m.subjects {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id, userID string) (*models.Subject, error) {
	s, ok := m.subjects[id]
	if !ok || s.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = "subj-" + subject.Code
	}
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockSubjectRepo) UpdatePartial(ctx context.Context, id, userID string, patch models.SubjectPatch) (bool, error) {
	m.updateCalled = true
	return m.updateMatched, nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	return m.deleteMatched, nil
}

type mockLectureLister struct {
	lectures []models.Lecture
}

func (m *mockLectureLister) ListBySubject(ctx context.Context, subjectID, userID string, limit int) ([]models.Lecture, error) {
	return m.lectures, nil
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) InvalidateStats(ctx context.Context, userID string) error {
	m.calls++
	return nil
}

func strPtr(s string) *string { return &s }

func TestSubjectServiceUpdateEmptyPatch(t *testing.T) {
	repo := newMockSubjectRepo()
	svc := NewSubjectService(repo, &mockLectureLister{}, nil, validator.New(), zap.NewNop())

	err := svc.Update(context.Background(), "s1", "u1", models.SubjectPatch{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.updateCalled, "empty patch must never reach the store")
}

func TestSubjectServiceUpdateNotOwned(t *testing.T) {
	repo := newMockSubjectRepo()
	repo.updateMatched = false
	svc := NewSubjectService(repo, &mockLectureLister{}, nil, validator.New(), zap.NewNop())

	err := svc.Update(context.Background(), "s1", "u1", models.SubjectPatch{Name: strPtr("Algebra")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceGetNotFound(t *testing.T) {
	repo := newMockSubjectRepo()
	repo.subjects["s1"] = &models.Subject{ID: "s1", UserID: "owner"}
	svc := NewSubjectService(repo, &mockLectureLister{}, nil, validator.New(), zap.NewNop())

	_, missingErr := svc.Get(context.Background(), "nope", "owner")
	_, notOwnedErr := svc.Get(context.Background(), "s1", "intruder")
	require.Error(t, missingErr)
	require.Error(t, notOwnedErr)
	assert.Equal(t, appErrors.FromError(missingErr).Message, appErrors.FromError(notOwnedErr).Message)
}

func TestSubjectServiceGetInlinesLectures(t *testing.T) {
	repo := newMockSubjectRepo()
	repo.subjects["s1"] = &models.Subject{ID: "s1", UserID: "u1", Name: "Physics"}
	lectures := &mockLectureLister{lectures: []models.Lecture{{ID: "l1"}, {ID: "l2"}}}
	svc := NewSubjectService(repo, lectures, nil, validator.New(), zap.NewNop())

	detail, err := svc.Get(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Len(t, detail.Lectures, 2)
	assert.Equal(t, 2, detail.LectureCount)
}

func TestSubjectServiceDeleteLeavesLectures(t *testing.T) {
	repo := newMockSubjectRepo()
	repo.subjects["s1"] = &models.Subject{ID: "s1", UserID: "u1"}
	repo.deleteMatched = true
	lectures := &mockLectureLister{lectures: []models.Lecture{{ID: "l1", SubjectID: "s1"}}}
	svc := NewSubjectService(repo, lectures, nil, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "s1", "u1"))

	remaining, err := svc.Lectures(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "lectures must outlive their subject")
}

func TestSubjectServiceCreateInvalidatesDashboard(t *testing.T) {
	repo := newMockSubjectRepo()
	cache := &mockInvalidator{}
	svc := NewSubjectService(repo, &mockLectureLister{}, cache, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", CreateSubjectRequest{Name: "Physics", Code: "PHY101"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.calls)
}

func TestSubjectServiceCreateValidation(t *testing.T) {
	repo := newMockSubjectRepo()
	svc := NewSubjectService(repo, &mockLectureLister{}, nil, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", CreateSubjectRequest{Description: "no name or code"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
