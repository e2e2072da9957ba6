package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
)

type subjectRepository interface {
	ListByOwner(ctx context.Context, userID string) ([]models.Subject, error)
	FindByID(ctx context.Context, id, userID string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	UpdatePartial(ctx context.Context, id, userID string, patch models.SubjectPatch) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type subjectLectureLister interface {
	ListBySubject(ctx context.Context, subjectID, userID string, limit int) ([]models.Lecture, error)
}

// CreateSubjectRequest captures fields for creating subjects.
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

// SubjectService handles ownership-scoped subject workflows.
type SubjectService struct {
	repo      subjectRepository
	lectures  subjectLectureLister
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, lectures subjectLectureLister, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, lectures: lectures, cache: cache, validator: validate, logger: logger}
}

// Create adds a new subject owned by the user.
func (s *SubjectService) Create(ctx context.Context, userID string, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject := &models.Subject{
		UserID:      userID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}

	s.invalidate(ctx, userID)
	return subject, nil
}

// List returns the user's subjects with per-subject lecture counts.
func (s *SubjectService) List(ctx context.Context, userID string) ([]models.Subject, error) {
	subjects, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Get returns a subject with its owned lectures inlined. Missing and
// not-owned are indistinguishable.
func (s *SubjectService) Get(ctx context.Context, id, userID string) (*models.SubjectDetail, error) {
	subject, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	lectures, err := s.lectures.ListBySubject(ctx, id, userID, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject lectures")
	}

	detail := &models.SubjectDetail{Subject: *subject, Lectures: lectures}
	detail.LectureCount = len(lectures)
	return detail, nil
}

// Update applies a partial update to an ownership-matched subject. An empty
// patch is rejected before touching the store.
func (s *SubjectService) Update(ctx context.Context, id, userID string, patch models.SubjectPatch) error {
	if patch.Empty() {
		return appErrors.Clone(appErrors.ErrValidation, "no updates provided")
	}

	matched, err := s.repo.UpdatePartial(ctx, id, userID, patch)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	if !matched {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return nil
}

// Delete removes an ownership-matched subject.
func (s *SubjectService) Delete(ctx context.Context, id, userID string) error {
	matched, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if !matched {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	s.invalidate(ctx, userID)
	return nil
}

// Lectures returns the user's lectures within a subject, flagged with
// has_notes.
func (s *SubjectService) Lectures(ctx context.Context, id, userID string) ([]models.Lecture, error) {
	lectures, err := s.lectures.ListBySubject(ctx, id, userID, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject lectures")
	}
	return lectures, nil
}

func (s *SubjectService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateStats(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
