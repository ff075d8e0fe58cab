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

const courseColumns = "id, nombre, nivel, precio_base, created_at"

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching the filter ordered by level then name.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Level != "" {
		conditions = append(conditions, fmt.Sprintf("nivel = $%d", len(args)+1))
		args = append(args, filter.Level)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("nombre ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	query := fmt.Sprintf("SELECT %s FROM cursos WHERE %s ORDER BY nivel ASC, nombre ASC", courseColumns, strings.Join(conditions, " AND "))
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID returns a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.db.GetContext(ctx, &course, "SELECT "+courseColumns+" FROM cursos WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// ExistsByNameLevel checks the (nombre, nivel) pair, optionally excluding an ID.
func (r *CourseRepository) ExistsByNameLevel(ctx context.Context, name, level string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM cursos WHERE nombre = $1 AND nivel = $2"
	args := []interface{}{name, level}
	if excludeID != 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course name: %w", err)
	}
	return true, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO cursos (nombre, nivel, precio_base) VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, course.Name, course.Level, course.BasePrice).Scan(&course.ID, &course.CreatedAt); err != nil {
		return fmt.Errorf("create course: %w", translate(err))
	}
	return nil
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE cursos SET nombre = $1, nivel = $2, precio_base = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, course.Name, course.Level, course.BasePrice, course.ID)
	if err != nil {
		return fmt.Errorf("update course: %w", translate(err))
	}
	return requireAffected(res)
}

// CountEnrollments returns how many enrollments reference the course.
func (r *CourseRepository) CountEnrollments(ctx context.Context, id int64) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM matriculas WHERE curso_id = $1", id); err != nil {
		return 0, fmt.Errorf("count course enrollments: %w", err)
	}
	return total, nil
}

// Delete removes a course.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cursos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete course: %w", translate(err))
	}
	return requireAffected(res)
}
