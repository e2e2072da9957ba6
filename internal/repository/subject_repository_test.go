package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduscribe/eduscribe-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func subjectColumns() []string {
	return []string{"id", "user_id", "name", "code", "description", "created_at", "updated_at", "lecture_count"}
}

func TestSubjectRepositoryListByOwner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(subjectColumns()).
		AddRow("s2", "u1", "Physics", "PHY101", "", now, now, 3).
		AddRow("s1", "u1", "Calculus", "MAT201", "", now.Add(-time.Hour), now, 0)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects s WHERE s.user_id = $1 ORDER BY s.created_at DESC, s.id ASC")).
		WithArgs("u1").
		WillReturnRows(rows)

	subjects, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "s2", subjects[0].ID)
	assert.Equal(t, 3, subjects[0].LectureCount)
	assert.Equal(t, 0, subjects[1].LectureCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryFindByIDScopesOwner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs("s1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "s1", "intruder")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subjects")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	subject := &models.Subject{UserID: "u1", Name: "Physics", Code: "PHY101"}
	require.NoError(t, repo.Create(context.Background(), subject))
	assert.NotEmpty(t, subject.ID)
	assert.False(t, subject.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryUpdatePartial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	name := "Quantum Physics"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE subjects SET name = $1, updated_at = $2 WHERE id = $3 AND user_id = $4")).
		WithArgs(name, sqlmock.AnyArg(), "s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.UpdatePartial(context.Background(), "s1", "u1", models.SubjectPatch{Name: &name})
	require.NoError(t, err)
	assert.True(t, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryUpdatePartialNoMatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	name := "Quantum Physics"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE subjects SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	matched, err := repo.UpdatePartial(context.Background(), "s1", "intruder", models.SubjectPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestSubjectRepositoryUpdatePartialEmptyPatch(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	_, err := repo.UpdatePartial(context.Background(), "s1", "u1", models.SubjectPatch{})
	require.Error(t, err)
}

func TestSubjectRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects WHERE id = $1 AND user_id = $2")).
		WithArgs("s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.Delete(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.True(t, matched)
	require.NoError(t, mock.ExpectationsWereMet())
}
