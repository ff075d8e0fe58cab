package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/repository"
	appErrors "github.com/noah-isme/ingenio-api/pkg/errors"
)

type feeRepository interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error)
	ListOutstanding(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error)
	FindByID(ctx context.Context, id int64) (*models.FeeView, error)
	Create(ctx context.Context, fee *models.Fee) error
	Delete(ctx context.Context, id int64) error
}

type paymentRepository interface {
	Record(ctx context.Context, payment *models.Payment, deadline *models.Date, guard repository.BalanceGuard) (*models.FeeBalance, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentDetail, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id int64) error
}

type enrollmentChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type paymentRecorder interface {
	ObservePayment(amount decimal.Decimal, status models.DisplayStatus)
}

// CreateFeeRequest holds payload for a new line-item.
type CreateFeeRequest struct {
	EnrollmentID int64            `json:"matricula_id" validate:"required,gt=0"`
	Period       string           `json:"periodo" validate:"required,max=20"`
	Amount       *decimal.Decimal `json:"monto" validate:"required"`
	StartDate    string           `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	DueDate      string           `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
}

// RecordPaymentRequest holds payload for a payment. fecha_limite_saldo is
// mandatory whenever the payment leaves a positive balance.
type RecordPaymentRequest struct {
	FeeID           int64            `json:"mensualidad_id" validate:"required,gt=0"`
	Amount          *decimal.Decimal `json:"monto" validate:"required"`
	PaymentDate     string           `json:"fecha_pago" validate:"required,datetime=2006-01-02"`
	BalanceDeadline *string          `json:"fecha_limite_saldo" validate:"omitempty,datetime=2006-01-02"`
}

// UpdatePaymentRequest changes amount and date of a recorded payment.
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"monto" validate:"required"`
	PaymentDate string           `json:"fecha_pago" validate:"required,datetime=2006-01-02"`
}

// ErrBalanceDeadlineRequired rejects a partial payment that carries no deadline for the remainder.
var ErrBalanceDeadlineRequired = appErrors.Clone(appErrors.ErrValidation, "fecha_limite_saldo is required when a balance remains")

// BillingService owns fee line-items and the payments recorded against them.
type BillingService struct {
	fees        feeRepository
	payments    paymentRepository
	enrollments enrollmentChecker
	metrics     paymentRecorder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewBillingService constructs the billing service. metrics may be nil.
func NewBillingService(fees feeRepository, payments paymentRepository, enrollments enrollmentChecker, metrics paymentRecorder, validate *validator.Validate, logger *zap.Logger) *BillingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{fees: fees, payments: payments, enrollments: enrollments, metrics: metrics, validator: validate, logger: logger}
}

// ListFees returns line-item views with their display status. It never mutates stored status.
func (s *BillingService) ListFees(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	if err := validateFeeStatus(filter.Status); err != nil {
		return nil, err
	}
	views, err := s.fees.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list fees")
	}
	return withDisplayStatus(views), nil
}

// ListOutstanding returns only line-items with a positive balance.
func (s *BillingService) ListOutstanding(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	if err := validateFeeStatus(filter.Status); err != nil {
		return nil, err
	}
	views, err := s.fees.ListOutstanding(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list pending fees")
	}
	return withDisplayStatus(views), nil
}

// GetFee returns one line-item view.
func (s *BillingService) GetFee(ctx context.Context, id int64) (*models.FeeView, error) {
	view, err := s.fees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Internal(err, "failed to load fee")
	}
	view.DisplayStatus = models.ResolveDisplayStatus(view.Amount, view.Paid)
	return view, nil
}

// CreateFee adds a PENDIENTE line-item to an existing enrollment. Repeated
// periods for the same enrollment are accepted.
func (s *BillingService) CreateFee(ctx context.Context, req CreateFeeRequest) (*models.Fee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid fee payload")
	}
	if !req.Amount.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "monto must be greater than zero")
	}
	start, err := parseDate("fecha_inicio", req.StartDate)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid fecha_inicio")
	}
	due, err := parseDate("fecha_vencimiento", req.DueDate)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid fecha_vencimiento")
	}
	if due.Before(start.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_vencimiento must not precede fecha_inicio")
	}

	exists, err := s.enrollments.Exists(ctx, req.EnrollmentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load enrollment")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}

	fee := &models.Fee{
		EnrollmentID: req.EnrollmentID,
		Period:       req.Period,
		Amount:       *req.Amount,
		StartDate:    start,
		DueDate:      due,
		Status:       models.FeeStatusPending,
	}
	if err := s.fees.Create(ctx, fee); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Internal(err, "failed to create fee")
	}
	return fee, nil
}

// DeleteFee removes a line-item. Payments are not inspected here; the store
// rejects deleting a line-item that has them and that becomes a conflict.
func (s *BillingService) DeleteFee(ctx context.Context, id int64) error {
	if err := s.fees.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		case errors.Is(err, repository.ErrReferenced):
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "fee has payments")
		}
		return appErrors.Internal(err, "failed to delete fee")
	}
	return nil
}

// RecordPayment applies a payment to a line-item atomically. Overpayment is
// accepted. A supplied deadline always overwrites the stored one.
func (s *BillingService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*models.PaymentReceipt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid payment payload")
	}
	if !req.Amount.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "monto must be greater than zero")
	}
	paidAt, err := parseDate("fecha_pago", req.PaymentDate)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid fecha_pago")
	}
	deadline, err := parseOptionalDate("fecha_limite_saldo", req.BalanceDeadline)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid fecha_limite_saldo")
	}

	amount := *req.Amount
	guard := func(before models.FeeBalance) error {
		if deadline == nil && before.Balance().Sub(amount).IsPositive() {
			return ErrBalanceDeadlineRequired
		}
		return nil
	}

	payment := &models.Payment{FeeID: req.FeeID, Amount: amount, PaymentDate: paidAt}
	before, err := s.payments.Record(ctx, payment, deadline, guard)
	if err != nil {
		var appErr *appErrors.Error
		switch {
		case errors.As(err, &appErr):
			return nil, appErr
		case errors.Is(err, sql.ErrNoRows), errors.Is(err, repository.ErrReferenced):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "fee not found")
		}
		return nil, appErrors.Internal(err, "failed to record payment")
	}

	paid := before.Paid.Add(amount)
	receipt := &models.PaymentReceipt{
		Payment:         *payment,
		BalanceAfter:    before.Amount.Sub(paid),
		DisplayStatus:   models.ResolveDisplayStatus(before.Amount, paid),
		BalanceDeadline: deadline,
	}
	if s.metrics != nil {
		s.metrics.ObservePayment(amount, receipt.DisplayStatus)
	}
	s.logger.Info("payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("fee_id", payment.FeeID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance_after", receipt.BalanceAfter.StringFixed(2)))
	return receipt, nil
}

// ListPayments returns payments newest first.
func (s *BillingService) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentDetail, error) {
	items, err := s.payments.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list payments")
	}
	return items, nil
}

// UpdatePayment changes amount and date of a payment.
func (s *BillingService) UpdatePayment(ctx context.Context, id int64, req UpdatePaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid payment payload")
	}
	if !req.Amount.IsPositive() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "monto must be greater than zero")
	}
	paidAt, err := parseDate("fecha_pago", req.PaymentDate)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid fecha_pago")
	}
	payment := &models.Payment{ID: id, Amount: *req.Amount, PaymentDate: paidAt}
	if err := s.payments.Update(ctx, payment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Internal(err, "failed to update payment")
	}
	return payment, nil
}

// DeletePayment removes a payment.
func (s *BillingService) DeletePayment(ctx context.Context, id int64) error {
	if err := s.payments.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return appErrors.Internal(err, "failed to delete payment")
	}
	return nil
}

func withDisplayStatus(views []models.FeeView) []models.FeeView {
	for i := range views {
		views[i].DisplayStatus = models.ResolveDisplayStatus(views[i].Amount, views[i].Paid)
	}
	return views
}

func validateFeeStatus(status models.FeeStatus) error {
	switch status {
	case "", models.FeeStatusPending, models.FeeStatusOverdue:
		return nil
	}
	return appErrors.Clone(appErrors.ErrValidation, "invalid estado filter")
}
