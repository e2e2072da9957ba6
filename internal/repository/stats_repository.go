package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eduscribe/eduscribe-api/internal/models"
)

// StatsRepository derives per-user dashboard counts. Note and document counts
// join through the lectures table, so a user with no lectures yields zero
// without any special casing.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new repository instance.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountSubjects returns the number of subjects owned by the user.
func (r *StatsRepository) CountSubjects(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subjects WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("count subjects: %w", err)
	}
	return count, nil
}

// CountLectures returns the number of lectures owned by the user.
func (r *StatsRepository) CountLectures(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lectures WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("count lectures: %w", err)
	}
	return count, nil
}

// CountNotes returns the number of notes attached to the user's lectures.
func (r *StatsRepository) CountNotes(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM notes n JOIN lectures l ON l.id = n.lecture_id WHERE l.user_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

// CountDocuments returns the number of documents registered for the user's
// lectures.
func (r *StatsRepository) CountDocuments(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM documents d JOIN lectures l ON l.id = d.lecture_id WHERE l.user_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// RecentLectures returns the user's most recently created lectures.
func (r *StatsRepository) RecentLectures(ctx context.Context, userID string, limit int) ([]models.Lecture, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `SELECT id, user_id, subject_id, title, created_at, FALSE AS has_notes FROM lectures WHERE user_id = $1 ORDER BY created_at DESC, id ASC LIMIT $2`
	lectures := []models.Lecture{}
	if err := r.db.SelectContext(ctx, &lectures, query, userID, limit); err != nil {
		return nil, fmt.Errorf("recent lectures: %w", err)
	}
	return lectures, nil
}
