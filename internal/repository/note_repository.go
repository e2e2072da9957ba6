package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduscribe/eduscribe-api/internal/models"
)

// NoteRepository handles persistence for synthesized notes and registered
// documents. Ownership checks join through the lectures table.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new repository instance.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create persists a synthesized note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO notes (id, lecture_id, content, source, created_at) VALUES (:id, :lecture_id, :content, :source, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// FindByID returns the note only when its lecture belongs to the given user.
func (r *NoteRepository) FindByID(ctx context.Context, id, userID string) (*models.Note, error) {
	const query = `SELECT n.id, n.lecture_id, n.content, n.source, n.created_at
		FROM notes n JOIN lectures l ON l.id = n.lecture_id
		WHERE n.id = $1 AND l.user_id = $2 LIMIT 1`
	var note models.Note
	if err := r.db.GetContext(ctx, &note, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find note by id: %w", err)
	}
	return &note, nil
}

// ListByLecture returns a lecture's notes, newest first. The caller is
// responsible for having verified lecture ownership.
func (r *NoteRepository) ListByLecture(ctx context.Context, lectureID string) ([]models.Note, error) {
	const query = `SELECT id, lecture_id, content, source, created_at FROM notes WHERE lecture_id = $1 ORDER BY created_at DESC, id ASC`
	notes := []models.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, lectureID); err != nil {
		return nil, fmt.Errorf("list lecture notes: %w", err)
	}
	return notes, nil
}

// ListByOwner returns all notes whose lecture belongs to the user, newest
// first.
func (r *NoteRepository) ListByOwner(ctx context.Context, userID string) ([]models.Note, error) {
	const query = `SELECT n.id, n.lecture_id, n.content, n.source, n.created_at
		FROM notes n JOIN lectures l ON l.id = n.lecture_id
		WHERE l.user_id = $1 ORDER BY n.created_at DESC, n.id ASC`
	notes := []models.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, userID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// CreateDocument registers reference-document metadata for a lecture.
func (r *NoteRepository) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO documents (id, lecture_id, filename, content_type, created_at) VALUES (:id, :lecture_id, :filename, :content_type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// ListDocumentsByLecture returns the documents registered for a lecture.
func (r *NoteRepository) ListDocumentsByLecture(ctx context.Context, lectureID string) ([]models.Document, error) {
	const query = `SELECT id, lecture_id, filename, content_type, created_at FROM documents WHERE lecture_id = $1 ORDER BY created_at DESC, id ASC`
	docs := []models.Document{}
	if err := r.db.SelectContext(ctx, &docs, query, lectureID); err != nil {
		return nil, fmt.Errorf("list lecture documents: %w", err)
	}
	return docs, nil
}
