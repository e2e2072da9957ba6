package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
)

type noteRepository interface {
	FindByID(ctx context.Context, id, userID string) (*models.Note, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Note, error)
}

type noteLectureFinder interface {
	FindByID(ctx context.Context, id, userID string) (*models.Lecture, error)
}

type noteExporter interface {
	Render(title, content string) ([]byte, error)
}

// NoteService exposes read-side note workflows and PDF export.
type NoteService struct {
	repo     noteRepository
	lectures noteLectureFinder
	exporter noteExporter
	logger   *zap.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(repo noteRepository, lectures noteLectureFinder, exporter noteExporter, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, lectures: lectures, exporter: exporter, logger: logger}
}

// ListMine returns all notes attached to the user's lectures, newest first.
func (s *NoteService) ListMine(ctx context.Context, userID string) ([]models.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}

// ExportPDF renders an owned note as a PDF document, titled after its
// lecture.
func (s *NoteService) ExportPDF(ctx context.Context, noteID, userID string) ([]byte, string, error) {
	note, err := s.repo.FindByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load note")
	}

	title := "Lecture Notes"
	if lecture, err := s.lectures.FindByID(ctx, note.LectureID, userID); err == nil {
		title = lecture.Title
	}

	pdf, err := s.exporter.Render(title, note.Content)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render note pdf")
	}
	return pdf, title, nil
}
