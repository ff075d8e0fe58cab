package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ingenio-api/internal/models"
)

// GuardianRepository manages guardians and their links to students.
type GuardianRepository struct {
	db *sqlx.DB
}

// NewGuardianRepository constructs a GuardianRepository.
func NewGuardianRepository(db *sqlx.DB) *GuardianRepository {
	return &GuardianRepository{db: db}
}

// List returns guardians whose name matches the search term.
func (r *GuardianRepository) List(ctx context.Context, filter models.GuardianFilter) ([]models.Guardian, error) {
	query := "SELECT id, nombres, telefono, created_at FROM apoderados"
	var args []interface{}
	if filter.Search != "" {
		query += " WHERE nombres ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY created_at DESC, id DESC"

	guardians := []models.Guardian{}
	if err := r.db.SelectContext(ctx, &guardians, query, args...); err != nil {
		return nil, fmt.Errorf("list guardians: %w", err)
	}
	return guardians, nil
}

// FindByID returns a guardian by ID.
func (r *GuardianRepository) FindByID(ctx context.Context, id int64) (*models.Guardian, error) {
	var guardian models.Guardian
	if err := r.db.GetContext(ctx, &guardian, "SELECT id, nombres, telefono, created_at FROM apoderados WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find guardian: %w", err)
	}
	return &guardian, nil
}

// StudentsFor loads the students linked to each of the given guardians.
func (r *GuardianRepository) StudentsFor(ctx context.Context, guardianIDs []int64) ([]models.GuardianStudent, error) {
	links := []models.GuardianStudent{}
	if len(guardianIDs) == 0 {
		return links, nil
	}
	const query = `SELECT aa.apoderado_id, a.id, a.dni, a.nombres, a.apellidos
        FROM alumno_apoderado aa
        JOIN alumnos a ON a.id = aa.alumno_id
        WHERE aa.apoderado_id = ANY($1)
        ORDER BY a.apellidos ASC, a.nombres ASC`
	if err := r.db.SelectContext(ctx, &links, query, pq.Array(guardianIDs)); err != nil {
		return nil, fmt.Errorf("load guardian students: %w", err)
	}
	return links, nil
}

// ListByStudent returns guardians linked to a student.
func (r *GuardianRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Guardian, error) {
	const query = `SELECT ap.id, ap.nombres, ap.telefono, ap.created_at
        FROM apoderados ap
        JOIN alumno_apoderado aa ON aa.apoderado_id = ap.id
        WHERE aa.alumno_id = $1
        ORDER BY ap.nombres ASC`
	guardians := []models.Guardian{}
	if err := r.db.SelectContext(ctx, &guardians, query, studentID); err != nil {
		return nil, fmt.Errorf("list student guardians: %w", err)
	}
	return guardians, nil
}

// CreateWithStudent inserts the guardian and its first link atomically.
func (r *GuardianRepository) CreateWithStudent(ctx context.Context, guardian *models.Guardian, studentID int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin guardian tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertGuardian = `INSERT INTO apoderados (nombres, telefono) VALUES ($1, $2) RETURNING id, created_at`
	if err = tx.QueryRowxContext(ctx, insertGuardian, guardian.Name, guardian.Phone).Scan(&guardian.ID, &guardian.CreatedAt); err != nil {
		return fmt.Errorf("create guardian: %w", translate(err))
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO alumno_apoderado (alumno_id, apoderado_id) VALUES ($1, $2)", studentID, guardian.ID); err != nil {
		return fmt.Errorf("link guardian: %w", translate(err))
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit guardian: %w", err)
	}
	return nil
}

// Update modifies guardian contact data.
func (r *GuardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	res, err := r.db.ExecContext(ctx, "UPDATE apoderados SET nombres = $1, telefono = $2 WHERE id = $3", guardian.Name, guardian.Phone, guardian.ID)
	if err != nil {
		return fmt.Errorf("update guardian: %w", err)
	}
	return requireAffected(res)
}

// Link attaches another student to the guardian.
func (r *GuardianRepository) Link(ctx context.Context, guardianID, studentID int64) error {
	if _, err := r.db.ExecContext(ctx, "INSERT INTO alumno_apoderado (alumno_id, apoderado_id) VALUES ($1, $2)", studentID, guardianID); err != nil {
		return fmt.Errorf("link guardian: %w", translate(err))
	}
	return nil
}

// Unlink removes a single guardian/student link.
func (r *GuardianRepository) Unlink(ctx context.Context, guardianID, studentID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM alumno_apoderado WHERE apoderado_id = $1 AND alumno_id = $2", guardianID, studentID)
	if err != nil {
		return fmt.Errorf("unlink guardian: %w", err)
	}
	return requireAffected(res)
}

// Delete removes the guardian's links and then the guardian in one transaction.
func (r *GuardianRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin guardian tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM alumno_apoderado WHERE apoderado_id = $1", id); err != nil {
		return fmt.Errorf("delete guardian links: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM apoderados WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete guardian: %w", err)
	}
	if err = requireAffected(res); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit guardian delete: %w", err)
	}
	return nil
}
