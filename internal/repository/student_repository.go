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

const studentColumns = "id, dni, nombres, apellidos, telefono, grado, created_at"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Grade != "" {
		conditions = append(conditions, fmt.Sprintf("grado = $%d", len(args)+1))
		args = append(args, filter.Grade)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(nombres ILIKE $%d OR apellidos ILIKE $%d OR dni ILIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	query := fmt.Sprintf("SELECT %s FROM alumnos WHERE %s ORDER BY apellidos ASC, nombres ASC", studentColumns, strings.Join(conditions, " AND "))
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM alumnos WHERE id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// ExistsByDNI checks if a student with given DNI exists optionally excluding an ID.
func (r *StudentRepository) ExistsByDNI(ctx context.Context, dni string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM alumnos WHERE dni = $1"
	args := []interface{}{dni}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check dni: %w", err)
	}
	return true, nil
}

// Create inserts a new student record and fills its generated fields.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO alumnos (dni, nombres, apellidos, telefono, grado)
        VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query, student.DNI, student.FirstName, student.LastName, student.Phone, student.Grade)
	if err := row.Scan(&student.ID, &student.CreatedAt); err != nil {
		return fmt.Errorf("create student: %w", translate(err))
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE alumnos SET dni = $1, nombres = $2, apellidos = $3, telefono = $4, grado = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, student.DNI, student.FirstName, student.LastName, student.Phone, student.Grade, student.ID)
	if err != nil {
		return fmt.Errorf("update student: %w", translate(err))
	}
	return requireAffected(res)
}

// Delete removes a student. Enrollments still pointing at it surface as ErrReferenced.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM alumnos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", translate(err))
	}
	return requireAffected(res)
}
