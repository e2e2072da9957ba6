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

type lectureRepository interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	FindByID(ctx context.Context, id, userID string) (*models.Lecture, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Lecture, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type lectureSubjectFinder interface {
	FindByID(ctx context.Context, id, userID string) (*models.Subject, error)
}

type lectureNoteRepository interface {
	ListByLecture(ctx context.Context, lectureID string) ([]models.Note, error)
	CreateDocument(ctx context.Context, doc *models.Document) error
	ListDocumentsByLecture(ctx context.Context, lectureID string) ([]models.Document, error)
}

// CreateLectureRequest captures fields for creating lectures.
type CreateLectureRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
}

// RegisterDocumentRequest registers reference-document metadata.
type RegisterDocumentRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

// LectureService handles ownership-scoped lecture workflows.
type LectureService struct {
	repo      lectureRepository
	subjects  lectureSubjectFinder
	notes     lectureNoteRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLectureService creates a new lecture service.
func NewLectureService(repo lectureRepository, subjects lectureSubjectFinder, notes lectureNoteRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *LectureService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LectureService{repo: repo, subjects: subjects, notes: notes, cache: cache, validator: validate, logger: logger}
}

// Create adds a lecture after verifying the target subject belongs to the
// user.
func (s *LectureService) Create(ctx context.Context, userID string, req CreateLectureRequest) (*models.Lecture, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecture payload")
	}

	if _, err := s.subjects.FindByID(ctx, req.SubjectID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	lecture := &models.Lecture{
		UserID:    userID,
		SubjectID: req.SubjectID,
		Title:     req.Title,
	}
	if err := s.repo.Create(ctx, lecture); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lecture")
	}

	s.invalidate(ctx, userID)
	return lecture, nil
}

// ListMine returns all of the user's lectures, newest first.
func (s *LectureService) ListMine(ctx context.Context, userID string) ([]models.Lecture, error) {
	lectures, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lectures")
	}
	return lectures, nil
}

// Detail returns a lecture with its notes and registered documents inlined.
func (s *LectureService) Detail(ctx context.Context, id, userID string) (*models.LectureDetail, error) {
	lecture, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecture")
	}

	notes, err := s.notes.ListByLecture(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecture notes")
	}
	docs, err := s.notes.ListDocumentsByLecture(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecture documents")
	}

	lecture.HasNotes = len(notes) > 0
	return &models.LectureDetail{Lecture: *lecture, Notes: notes, Documents: docs}, nil
}

// Delete removes an ownership-matched lecture.
func (s *LectureService) Delete(ctx context.Context, id, userID string) error {
	matched, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lecture")
	}
	if !matched {
		return appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
	}

	s.invalidate(ctx, userID)
	return nil
}

// RegisterDocument stores document metadata for an owned lecture.
func (s *LectureService) RegisterDocument(ctx context.Context, lectureID, userID string, req RegisterDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document payload")
	}

	if _, err := s.repo.FindByID(ctx, lectureID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecture not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecture")
	}

	doc := &models.Document{
		LectureID:   lectureID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
	}
	if err := s.notes.CreateDocument(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register document")
	}

	s.invalidate(ctx, userID)
	return doc, nil
}

func (s *LectureService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateStats(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
