package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ingenio-api/internal/models"
)

func TestGuardianRepositoryCreateWithStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO apoderados").
		WithArgs("Rosa Mamani", "999111222").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(4, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO alumno_apoderado (alumno_id, apoderado_id) VALUES ($1, $2)")).
		WithArgs(int64(10), int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	guardian := &models.Guardian{Name: "Rosa Mamani", Phone: "999111222"}
	require.NoError(t, repo.CreateWithStudent(context.Background(), guardian, 10))
	assert.Equal(t, int64(4), guardian.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardianRepositoryCreateRollsBackOnMissingStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO apoderados").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(4, time.Now()))
	mock.ExpectExec("INSERT INTO alumno_apoderado").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "alumno_apoderado_alumno_id_fkey"})
	mock.ExpectRollback()

	err := repo.CreateWithStudent(context.Background(), &models.Guardian{Name: "X"}, 404)
	assert.True(t, errors.Is(err, ErrReferenced))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardianRepositoryStudentsFor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectQuery("WHERE aa.apoderado_id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]int64{1, 2})).
		WillReturnRows(sqlmock.NewRows([]string{"apoderado_id", "id", "dni", "nombres", "apellidos"}).
			AddRow(1, 10, "70112233", "Ana", "Quispe").
			AddRow(2, 11, "70112244", "Luis", "Quispe"))

	links, err := repo.StudentsFor(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, int64(2), links[1].GuardianID)
	assert.Equal(t, "Luis", links[1].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardianRepositoryStudentsForEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	links, err := repo.StudentsFor(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardianRepositoryLinkDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectExec("INSERT INTO alumno_apoderado").
		WithArgs(int64(10), int64(4)).
		WillReturnError(&pq.Error{Code: "23505"})

	assert.True(t, errors.Is(repo.Link(context.Background(), 4, 10), ErrDuplicate))
}

func TestGuardianRepositoryUnlinkMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectExec("DELETE FROM alumno_apoderado WHERE apoderado_id = \\$1 AND alumno_id = \\$2").
		WithArgs(int64(4), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Unlink(context.Background(), 4, 10), sql.ErrNoRows)
}

func TestGuardianRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM alumno_apoderado WHERE apoderado_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM apoderados WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardianRepositoryDeleteMissingRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGuardianRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM alumno_apoderado").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM apoderados").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
