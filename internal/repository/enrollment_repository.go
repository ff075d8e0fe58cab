package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ingenio-api/internal/models"
)

const enrollmentDetailSelect = `SELECT m.id, m.alumno_id, m.curso_id, m.anio, m.fecha_inicio, m.monto, m.estado, m.created_at,
        a.nombres AS alumno_nombres, a.apellidos AS alumno_apellidos, a.dni AS alumno_dni,
        c.nombre AS curso_nombre, c.nivel AS curso_nivel,
        COALESCE(SUM(p.monto), 0) AS total_pagado,
        m.monto - COALESCE(SUM(p.monto), 0) AS saldo
        FROM matriculas m
        JOIN alumnos a ON a.id = m.alumno_id
        JOIN cursos c ON c.id = m.curso_id
        LEFT JOIN mensualidades me ON me.matricula_id = m.id
        LEFT JOIN pagos p ON p.mensualidad_id = me.id`

const enrollmentGroupBy = " GROUP BY m.id, a.id, c.id"

// EnrollmentRepository manages enrollments and their derived payment totals.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments with total paid and balance aggregated across their line-items.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("m.estado = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.StudentID != 0 {
		conditions = append(conditions, fmt.Sprintf("m.alumno_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != 0 {
		conditions = append(conditions, fmt.Sprintf("m.curso_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(a.nombres ILIKE $%d OR a.apellidos ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	query := enrollmentDetailSelect + " WHERE " + strings.Join(conditions, " AND ") + enrollmentGroupBy + " ORDER BY m.created_at DESC, m.id DESC"
	enrollments := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID returns one enrollment with its aggregates.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + " WHERE m.id = $1" + enrollmentGroupBy
	var detail models.EnrollmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &detail, nil
}

// Exists reports whether an enrollment with the given ID is stored.
func (r *EnrollmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM matriculas WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create inserts an enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO matriculas (alumno_id, curso_id, anio, fecha_inicio, monto, estado)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, enrollment.StudentID, enrollment.CourseID, enrollment.Year, enrollment.StartDate, enrollment.Amount, enrollment.Status)
	if err := row.Scan(&enrollment.ID, &enrollment.CreatedAt); err != nil {
		return fmt.Errorf("create enrollment: %w", translate(err))
	}
	return nil
}

// UpdateStatus changes the administrative status of an enrollment.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE matriculas SET estado = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return requireAffected(res)
}

// Delete removes an enrollment without inspecting its line-items.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM matriculas WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", translate(err))
	}
	return requireAffected(res)
}
