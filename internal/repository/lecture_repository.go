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

// LectureRepository handles persistence for lectures.
type LectureRepository struct {
	db *sqlx.DB
}

// NewLectureRepository creates a new repository instance.
func NewLectureRepository(db *sqlx.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// Create persists a new lecture.
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	if lecture.ID == "" {
		lecture.ID = uuid.NewString()
	}
	if lecture.CreatedAt.IsZero() {
		lecture.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO lectures (id, user_id, subject_id, title, created_at) VALUES (:id, :user_id, :subject_id, :title, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lecture); err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}
	return nil
}

// FindByID returns the lecture only when it belongs to the given user.
func (r *LectureRepository) FindByID(ctx context.Context, id, userID string) (*models.Lecture, error) {
	const query = `SELECT id, user_id, subject_id, title, created_at, FALSE AS has_notes FROM lectures WHERE id = $1 AND user_id = $2 LIMIT 1`
	var lecture models.Lecture
	if err := r.db.GetContext(ctx, &lecture, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lecture by id: %w", err)
	}
	return &lecture, nil
}

// ListByOwner returns all lectures of a user, newest first.
func (r *LectureRepository) ListByOwner(ctx context.Context, userID string) ([]models.Lecture, error) {
	const query = `SELECT id, user_id, subject_id, title, created_at, FALSE AS has_notes FROM lectures WHERE user_id = $1 ORDER BY created_at DESC, id ASC`
	lectures := []models.Lecture{}
	if err := r.db.SelectContext(ctx, &lectures, query, userID); err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

// ListBySubject returns the user's lectures in a subject, newest first, each
// flagged with whether synthesized notes exist.
func (r *LectureRepository) ListBySubject(ctx context.Context, subjectID, userID string, limit int) ([]models.Lecture, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT l.id, l.user_id, l.subject_id, l.title, l.created_at,
		EXISTS (SELECT 1 FROM notes n WHERE n.lecture_id = l.id) AS has_notes
		FROM lectures l WHERE l.subject_id = $1 AND l.user_id = $2 ORDER BY l.created_at DESC, l.id ASC LIMIT $3`
	lectures := []models.Lecture{}
	if err := r.db.SelectContext(ctx, &lectures, query, subjectID, userID, limit); err != nil {
		return nil, fmt.Errorf("list subject lectures: %w", err)
	}
	return lectures, nil
}

// Delete removes an ownership-matched lecture and reports whether a row
// matched.
func (r *LectureRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lectures WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete lecture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lecture rows affected: %w", err)
	}
	return affected > 0, nil
}
