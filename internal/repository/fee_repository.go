package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ingenio-api/internal/models"
)

const feeViewSelect = `SELECT me.id, me.matricula_id, me.periodo, me.monto, me.fecha_inicio, me.fecha_vencimiento, me.fecha_limite_saldo, me.estado,
        a.id AS alumno_id, a.nombres AS alumno_nombres, a.apellidos AS alumno_apellidos, c.nombre AS curso_nombre,
        COALESCE(SUM(p.monto), 0) AS pagado,
        me.monto - COALESCE(SUM(p.monto), 0) AS saldo,
        MIN(p.fecha_pago) AS fecha_primer_pago
        FROM mensualidades me
        JOIN matriculas m ON m.id = me.matricula_id
        JOIN alumnos a ON a.id = m.alumno_id
        JOIN cursos c ON c.id = m.curso_id
        LEFT JOIN pagos p ON p.mensualidad_id = me.id`

const (
	feeGroupBy        = " GROUP BY me.id, a.id, c.id"
	feeOutstanding    = " HAVING me.monto - COALESCE(SUM(p.monto), 0) > 0"
	feeOrderByDueDate = " ORDER BY me.fecha_vencimiento ASC, me.id ASC"
)

// FeeRepository manages monthly fee line-items.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// List returns every matching line-item with its payment aggregate.
func (r *FeeRepository) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	return r.selectViews(ctx, filter, false)
}

// ListOutstanding returns only line-items whose balance is still positive,
// regardless of their persisted status.
func (r *FeeRepository) ListOutstanding(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	return r.selectViews(ctx, filter, true)
}

func (r *FeeRepository) selectViews(ctx context.Context, filter models.FeeFilter, outstanding bool) ([]models.FeeView, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("me.estado = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.EnrollmentID != 0 {
		conditions = append(conditions, fmt.Sprintf("me.matricula_id = $%d", len(args)+1))
		args = append(args, filter.EnrollmentID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(a.nombres ILIKE $%[1]d OR a.apellidos ILIKE $%[1]d OR me.periodo ILIKE $%[1]d)", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	query := feeViewSelect + " WHERE " + strings.Join(conditions, " AND ") + feeGroupBy
	if outstanding {
		query += feeOutstanding
	}
	query += feeOrderByDueDate

	views := []models.FeeView{}
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return views, nil
}

// FindByID returns a single line-item view.
func (r *FeeRepository) FindByID(ctx context.Context, id int64) (*models.FeeView, error) {
	var view models.FeeView
	if err := r.db.GetContext(ctx, &view, feeViewSelect+" WHERE me.id = $1"+feeGroupBy, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find fee: %w", err)
	}
	return &view, nil
}

// Create inserts a line-item. Status is written as given; no balance deadline is set.
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	const query = `INSERT INTO mensualidades (matricula_id, periodo, monto, fecha_inicio, fecha_vencimiento, estado)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	row := r.db.QueryRowxContext(ctx, query, fee.EnrollmentID, fee.Period, fee.Amount, fee.StartDate, fee.DueDate, fee.Status)
	if err := row.Scan(&fee.ID); err != nil {
		return fmt.Errorf("create fee: %w", translate(err))
	}
	return nil
}

// Delete removes a line-item without checking its payments first. pagos
// references mensualidades ON DELETE RESTRICT, so a line-item that still has
// payments fails with ErrReferenced instead of leaving them orphaned.
func (r *FeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM mensualidades WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete fee: %w", translate(err))
	}
	return requireAffected(res)
}

// MarkOverdue flips every PENDIENTE line-item due strictly before today to
// VENCIDO in a single statement and returns the rows it changed. Only the
// calendar date of today is used.
func (r *FeeRepository) MarkOverdue(ctx context.Context, today time.Time) ([]models.OverdueFee, error) {
	const query = `UPDATE mensualidades SET estado = $1
        WHERE fecha_vencimiento < $2::date AND estado = $3
        RETURNING id, periodo, fecha_vencimiento`
	changed := []models.OverdueFee{}
	if err := r.db.SelectContext(ctx, &changed, query, models.FeeStatusOverdue, today.Format("2006-01-02"), models.FeeStatusPending); err != nil {
		return nil, fmt.Errorf("mark overdue fees: %w", err)
	}
	return changed, nil
}
