package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduscribe/eduscribe-api/internal/models"
)

func lectureColumns() []string {
	return []string{"id", "user_id", "subject_id", "title", "created_at", "has_notes"}
}

func TestLectureRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLectureRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lectures")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	lecture := &models.Lecture{UserID: "u1", SubjectID: "s1", Title: "Entropy"}
	require.NoError(t, repo.Create(context.Background(), lecture))
	assert.NotEmpty(t, lecture.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLectureRepositoryListBySubjectHasNotes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLectureRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(lectureColumns()).
		AddRow("l2", "u1", "s1", "Second Law", now, true).
		AddRow("l1", "u1", "s1", "First Law", now.Add(-time.Hour), false)

	mock.ExpectQuery(regexp.QuoteMeta("EXISTS (SELECT 1 FROM notes n WHERE n.lecture_id = l.id) AS has_notes")).
		WithArgs("s1", "u1", 50).
		WillReturnRows(rows)

	lectures, err := repo.ListBySubject(context.Background(), "s1", "u1", 0)
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.True(t, lectures[0].HasNotes)
	assert.False(t, lectures[1].HasNotes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLectureRepositoryDeleteScopesOwner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLectureRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lectures WHERE id = $1 AND user_id = $2")).
		WithArgs("l1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	matched, err := repo.Delete(context.Background(), "l1", "intruder")
	require.NoError(t, err)
	assert.False(t, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}
