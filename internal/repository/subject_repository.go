package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduscribe/eduscribe-api/internal/models"
)

// SubjectRepository handles persistence for subjects. Every read, update and
// delete is filtered by the owning user's id.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByOwner returns the user's subjects newest first, each annotated with
// the count of the same user's lectures in that subject.
func (r *SubjectRepository) ListByOwner(ctx context.Context, userID string) ([]models.Subject, error) {
	const query = `SELECT s.id, s.user_id, s.name, s.code, s.description, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM lectures l WHERE l.subject_id = s.id AND l.user_id = s.user_id) AS lecture_count
		FROM subjects s WHERE s.user_id = $1 ORDER BY s.created_at DESC, s.id ASC`
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query, userID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns the subject only when it belongs to the given user.
func (r *SubjectRepository) FindByID(ctx context.Context, id, userID string) (*models.Subject, error) {
	const query = `SELECT id, user_id, name, code, description, created_at, updated_at, 0 AS lecture_count FROM subjects WHERE id = $1 AND user_id = $2 LIMIT 1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject by id: %w", err)
	}
	return &subject, nil
}

// Create persists a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now

	const query = `INSERT INTO subjects (id, user_id, name, code, description, created_at, updated_at) VALUES (:id, :user_id, :name, :code, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// UpdatePartial applies the set fields of the patch to an ownership-matched
// subject. It reports whether any row matched.
func (r *SubjectRepository) UpdatePartial(ctx context.Context, id, userID string, patch models.SubjectPatch) (bool, error) {
	sets := []string{}
	args := []interface{}{}

	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *patch.Name)
	}
	if patch.Code != nil {
		sets = append(sets, fmt.Sprintf("code = $%d", len(args)+1))
		args = append(args, *patch.Code)
	}
	if patch.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)+1))
		args = append(args, *patch.Description)
	}
	if len(sets) == 0 {
		return false, fmt.Errorf("update subject: empty patch")
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf("UPDATE subjects SET %s WHERE id = $%d AND user_id = $%d", strings.Join(sets, ", "), len(args)+1, len(args)+2)
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update subject rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes an ownership-matched subject and reports whether a row
// matched.
func (r *SubjectRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subject rows affected: %w", err)
	}
	return affected > 0, nil
}
