package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ingenio-api/internal/models"
)

// BalanceGuard inspects the locked balance before a payment is written and may veto it.
type BalanceGuard func(before models.FeeBalance) error

// PaymentRepository manages payments against fee line-items.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Record inserts a payment and optionally overwrites the line-item's balance
// deadline, in one transaction. The line-item row stays locked from the balance
// read until commit so concurrent payments on it serialize. guard sees the
// balance before the payment; a non-nil result aborts without writing.
// It returns that pre-payment balance.
func (r *PaymentRepository) Record(ctx context.Context, payment *models.Payment, deadline *models.Date, guard BalanceGuard) (balance *models.FeeBalance, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin payment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var before models.FeeBalance
	if err = tx.GetContext(ctx, &before, "SELECT id, monto, 0 AS pagado FROM mensualidades WHERE id = $1 FOR UPDATE", payment.FeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("lock fee: %w", err)
	}
	if err = tx.GetContext(ctx, &before.Paid, "SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE mensualidad_id = $1", payment.FeeID); err != nil {
		return nil, fmt.Errorf("sum fee payments: %w", err)
	}

	if guard != nil {
		if err = guard(before); err != nil {
			return nil, err
		}
	}

	const insert = `INSERT INTO pagos (mensualidad_id, monto, fecha_pago) VALUES ($1, $2, $3) RETURNING id, created_at`
	if err = tx.QueryRowxContext(ctx, insert, payment.FeeID, payment.Amount, payment.PaymentDate).Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert payment: %w", translate(err))
	}

	if deadline != nil {
		if _, err = tx.ExecContext(ctx, "UPDATE mensualidades SET fecha_limite_saldo = $1 WHERE id = $2", *deadline, payment.FeeID); err != nil {
			return nil, fmt.Errorf("update balance deadline: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}
	return &before, nil
}

// List returns payments joined with their line-item, student and course, newest first.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentDetail, error) {
	query := `SELECT p.id, p.mensualidad_id, p.monto, p.fecha_pago, p.created_at,
        me.periodo, a.nombres AS alumno_nombres, a.apellidos AS alumno_apellidos, c.nombre AS curso_nombre
        FROM pagos p
        JOIN mensualidades me ON me.id = p.mensualidad_id
        JOIN matriculas m ON m.id = me.matricula_id
        JOIN alumnos a ON a.id = m.alumno_id
        JOIN cursos c ON c.id = m.curso_id`
	var args []interface{}
	if filter.Search != "" {
		query += " WHERE (a.nombres ILIKE $1 OR a.apellidos ILIKE $1 OR me.periodo ILIKE $1)"
		args = append(args, "%"+filter.Search+"%")
	}
	query += " ORDER BY p.fecha_pago DESC, p.id DESC"

	payments := []models.PaymentDetail{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Update changes amount and date of a payment and fills in the unchanged fields.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	const query = `UPDATE pagos SET monto = $1, fecha_pago = $2 WHERE id = $3 RETURNING mensualidad_id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, payment.Amount, payment.PaymentDate, payment.ID).Scan(&payment.FeeID, &payment.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pagos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return requireAffected(res)
}
