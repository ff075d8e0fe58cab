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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ingenio-api/internal/models"
)

var feeRowColumns = []string{"id", "matricula_id", "periodo", "monto", "fecha_inicio", "fecha_vencimiento", "fecha_limite_saldo", "estado",
	"alumno_id", "alumno_nombres", "alumno_apellidos", "curso_nombre", "pagado", "saldo", "fecha_primer_pago"}

func TestFeeRepositoryListComposesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(feeRowColumns).
		AddRow(1, 5, "2026-01", "150.00", start, due, nil, "PENDIENTE", 10, "Ana", "Quispe", "Matemática", "100.00", "50.00", paidAt)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND me.estado = $1 AND me.matricula_id = $2 AND (a.nombres ILIKE $3 OR a.apellidos ILIKE $3 OR me.periodo ILIKE $3) GROUP BY me.id, a.id, c.id ORDER BY me.fecha_vencimiento ASC, me.id ASC")).
		WithArgs(models.FeeStatusPending, int64(5), "%ana%").
		WillReturnRows(rows)

	views, err := repo.List(context.Background(), models.FeeFilter{Status: models.FeeStatusPending, EnrollmentID: 5, Search: "ana"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Paid.Equal(decimal.RequireFromString("100")))
	assert.Nil(t, views[0].BalanceDeadline)
	require.NotNil(t, views[0].FirstPaymentDate)
	assert.Equal(t, "2026-01-10", views[0].FirstPaymentDate.String())
	assert.Equal(t, "2026-01-31", views[0].DueDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryListSearchMatchesPeriod(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND (a.nombres ILIKE $1 OR a.apellidos ILIKE $1 OR me.periodo ILIKE $1) GROUP BY")).
		WithArgs("%2026-03%").
		WillReturnRows(sqlmock.NewRows(feeRowColumns))

	views, err := repo.List(context.Background(), models.FeeFilter{Search: "2026-03"})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryListOutstandingUsesHaving(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY me.id, a.id, c.id HAVING me.monto - COALESCE(SUM(p.monto), 0) > 0 ORDER BY me.fecha_vencimiento ASC")).
		WillReturnRows(sqlmock.NewRows(feeRowColumns))

	views, err := repo.ListOutstanding(context.Background(), models.FeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO mensualidades").
		WithArgs(int64(5), "2026-02", sqlmock.AnyArg(), "2026-02-01", "2026-02-28", models.FeeStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	fee := &models.Fee{EnrollmentID: 5, Period: "2026-02", Amount: decimal.RequireFromString("150"), StartDate: models.NewDate(start), DueDate: models.NewDate(due), Status: models.FeeStatusPending}
	require.NoError(t, repo.Create(context.Background(), fee))
	assert.Equal(t, int64(9), fee.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec("DELETE FROM mensualidades").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM mensualidades").WithArgs(int64(2)).WillReturnError(&pq.Error{Code: "23503"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), sql.ErrNoRows)
	assert.True(t, errors.Is(repo.Delete(context.Background(), 2), ErrReferenced))
}

func TestFeeRepositoryMarkOverdue(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	today := time.Date(2026, 3, 1, 23, 30, 0, 0, time.FixedZone("PET", -5*3600))
	due := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE mensualidades SET estado = $1\n        WHERE fecha_vencimiento < $2::date AND estado = $3\n        RETURNING id, periodo, fecha_vencimiento")).
		WithArgs(models.FeeStatusOverdue, "2026-03-01", models.FeeStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "periodo", "fecha_vencimiento"}).AddRow(3, "2026-02", due))
	mock.ExpectQuery("UPDATE mensualidades SET estado").
		WithArgs(models.FeeStatusOverdue, "2026-03-01", models.FeeStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "periodo", "fecha_vencimiento"}))

	first, err := repo.MarkOverdue(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "2026-02", first[0].Period)
	assert.Equal(t, "2026-02-28", first[0].DueDate.String())

	second, err := repo.MarkOverdue(context.Background(), today)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}
