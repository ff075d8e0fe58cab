package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ingenio-api/internal/models"
)

// ReportRepository runs the read-only aggregate queries behind the reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// OverdueStudents lists students holding at least one VENCIDO line-item.
// deuda_total sums the course base price once per matched line-item.
func (r *ReportRepository) OverdueStudents(ctx context.Context) ([]models.OverdueStudent, error) {
	const query = `SELECT a.id AS alumno_id, a.dni, a.nombres, a.apellidos, a.telefono,
        COUNT(me.id) AS mensualidades_vencidas,
        COALESCE(SUM(c.precio_base), 0) AS deuda_total
        FROM alumnos a
        JOIN matriculas m ON m.alumno_id = a.id
        JOIN cursos c ON c.id = m.curso_id
        JOIN mensualidades me ON me.matricula_id = m.id
        WHERE me.estado = $1
        GROUP BY a.id
        ORDER BY mensualidades_vencidas DESC, a.apellidos ASC`
	rows := []models.OverdueStudent{}
	if err := r.db.SelectContext(ctx, &rows, query, models.FeeStatusOverdue); err != nil {
		return nil, fmt.Errorf("overdue students report: %w", err)
	}
	return rows, nil
}

// Revenue groups payments by YYYY-MM for a year and optional month.
func (r *ReportRepository) Revenue(ctx context.Context, filter models.RevenueFilter) ([]models.RevenuePeriod, error) {
	query := `SELECT TO_CHAR(p.fecha_pago, 'YYYY-MM') AS periodo,
        COUNT(p.id) AS total_pagos,
        COALESCE(SUM(p.monto), 0) AS total_ingresos
        FROM pagos p
        WHERE EXTRACT(YEAR FROM p.fecha_pago) = $1`
	args := []interface{}{filter.Year}
	if filter.Month != 0 {
		query += " AND EXTRACT(MONTH FROM p.fecha_pago) = $2"
		args = append(args, filter.Month)
	}
	query += " GROUP BY periodo ORDER BY periodo DESC"

	rows := []models.RevenuePeriod{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("revenue report: %w", err)
	}
	return rows, nil
}

// Stats computes the dashboard counters; revenue covers [monthStart, monthEnd).
func (r *ReportRepository) Stats(ctx context.Context, monthStart, monthEnd time.Time) (*models.GeneralStats, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM alumnos) AS total_alumnos,
        (SELECT COUNT(*) FROM cursos) AS total_cursos,
        (SELECT COUNT(*) FROM matriculas WHERE estado = $1) AS matriculas_activas,
        (SELECT COUNT(*) FROM mensualidades WHERE estado = $2) AS mensualidades_pendientes,
        (SELECT COUNT(*) FROM mensualidades WHERE estado = $3) AS mensualidades_vencidas,
        (SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE fecha_pago >= $4 AND fecha_pago < $5) AS ingresos_mes`
	var stats models.GeneralStats
	if err := r.db.GetContext(ctx, &stats, query,
		models.EnrollmentStatusActive, models.FeeStatusPending, models.FeeStatusOverdue, monthStart, monthEnd); err != nil {
		return nil, fmt.Errorf("general stats: %w", err)
	}
	return &stats, nil
}
