package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ingenio-api/internal/models"
)

func TestReportRepositoryOverdueStudents(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(c.precio_base), 0) AS deuda_total")).
		WithArgs(models.FeeStatusOverdue).
		WillReturnRows(sqlmock.NewRows([]string{"alumno_id", "dni", "nombres", "apellidos", "telefono", "mensualidades_vencidas", "deuda_total"}).
			AddRow(10, "70112233", "Ana", "Quispe", "987", 2, "300.00"))

	rows, err := repo.OverdueStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].OverdueCount)
	assert.True(t, rows[0].TotalDebt.Equal(decimal.RequireFromString("300")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryRevenueWithMonth(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE EXTRACT(YEAR FROM p.fecha_pago) = $1 AND EXTRACT(MONTH FROM p.fecha_pago) = $2 GROUP BY periodo ORDER BY periodo DESC")).
		WithArgs(2026, 2).
		WillReturnRows(sqlmock.NewRows([]string{"periodo", "total_pagos", "total_ingresos"}).AddRow("2026-02", 3, "450.00"))

	rows, err := repo.Revenue(context.Background(), models.RevenueFilter{Year: 2026, Month: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].PaymentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryRevenueYearOnly(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("EXTRACT(YEAR FROM p.fecha_pago) = $1 GROUP BY periodo")).
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"periodo", "total_pagos", "total_ingresos"}))

	rows, err := repo.Revenue(context.Background(), models.RevenueFilter{Year: 2026})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryStats(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	mock.ExpectQuery("SELECT").
		WithArgs(models.EnrollmentStatusActive, models.FeeStatusPending, models.FeeStatusOverdue, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"total_alumnos", "total_cursos", "matriculas_activas", "mensualidades_pendientes", "mensualidades_vencidas", "ingresos_mes"}).
			AddRow(40, 6, 35, 12, 4, "2150.50"))

	stats, err := repo.Stats(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalStudents)
	assert.Equal(t, 4, stats.OverdueFees)
	assert.True(t, stats.MonthRevenue.Equal(decimal.RequireFromString("2150.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
