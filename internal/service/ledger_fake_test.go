package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/repository"
)

// fakeLedger keeps fees and payments in memory and mimics the store's
// aggregate queries, serializing Record the way the row lock does.
type fakeLedger struct {
	mu          sync.Mutex
	enrollments map[int64]bool
	fees        map[int64]*models.Fee
	payments    map[int64]*models.Payment
	nextFee     int64
	nextPayment int64
	markErr     error
}

func newFakeLedger(enrollmentIDs ...int64) *fakeLedger {
	l := &fakeLedger{
		enrollments: make(map[int64]bool),
		fees:        make(map[int64]*models.Fee),
		payments:    make(map[int64]*models.Payment),
	}
	for _, id := range enrollmentIDs {
		l.enrollments[id] = true
	}
	return l
}

func (l *fakeLedger) seedFee(fee models.Fee) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextFee++
	fee.ID = l.nextFee
	if fee.Status == "" {
		fee.Status = models.FeeStatusPending
	}
	l.fees[fee.ID] = &fee
	return fee.ID
}

func (l *fakeLedger) paidLocked(feeID int64) (decimal.Decimal, *models.Date) {
	paid := decimal.Zero
	var first *models.Date
	for _, p := range l.payments {
		if p.FeeID != feeID {
			continue
		}
		paid = paid.Add(p.Amount)
		if first == nil || p.PaymentDate.Before(first.Time) {
			d := p.PaymentDate
			first = &d
		}
	}
	return paid, first
}

func (l *fakeLedger) viewLocked(fee *models.Fee) models.FeeView {
	paid, first := l.paidLocked(fee.ID)
	return models.FeeView{Fee: *fee, Paid: paid, Balance: fee.Amount.Sub(paid), FirstPaymentDate: first}
}

func (l *fakeLedger) list(filter models.FeeFilter, outstanding bool) []models.FeeView {
	l.mu.Lock()
	defer l.mu.Unlock()
	views := []models.FeeView{}
	for _, fee := range l.fees {
		if filter.Status != "" && fee.Status != filter.Status {
			continue
		}
		if filter.EnrollmentID != 0 && fee.EnrollmentID != filter.EnrollmentID {
			continue
		}
		view := l.viewLocked(fee)
		if outstanding && !view.Balance.IsPositive() {
			continue
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].DueDate.Equal(views[j].DueDate.Time) {
			return views[i].ID < views[j].ID
		}
		return views[i].DueDate.Before(views[j].DueDate.Time)
	})
	return views
}

func (l *fakeLedger) List(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	return l.list(filter, false), nil
}

func (l *fakeLedger) ListOutstanding(ctx context.Context, filter models.FeeFilter) ([]models.FeeView, error) {
	return l.list(filter, true), nil
}

func (l *fakeLedger) FindByID(ctx context.Context, id int64) (*models.FeeView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fee, ok := l.fees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	view := l.viewLocked(fee)
	return &view, nil
}

func (l *fakeLedger) Create(ctx context.Context, fee *models.Fee) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enrollments[fee.EnrollmentID] {
		return repository.ErrReferenced
	}
	l.nextFee++
	fee.ID = l.nextFee
	stored := *fee
	l.fees[fee.ID] = &stored
	return nil
}

func (l *fakeLedger) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.fees[id]; !ok {
		return sql.ErrNoRows
	}
	for _, p := range l.payments {
		if p.FeeID == id {
			return repository.ErrReferenced
		}
	}
	delete(l.fees, id)
	return nil
}

func (l *fakeLedger) Exists(ctx context.Context, id int64) (bool, error) {
	return l.enrollments[id], nil
}

func (l *fakeLedger) MarkOverdue(ctx context.Context, today time.Time) ([]models.OverdueFee, error) {
	if l.markErr != nil {
		return nil, l.markErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	changed := []models.OverdueFee{}
	for _, fee := range l.fees {
		due := time.Date(fee.DueDate.Year(), fee.DueDate.Month(), fee.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		if fee.Status == models.FeeStatusPending && due.Before(cutoff) {
			fee.Status = models.FeeStatusOverdue
			changed = append(changed, models.OverdueFee{ID: fee.ID, Period: fee.Period, DueDate: fee.DueDate})
		}
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i].ID < changed[j].ID })
	return changed, nil
}

// fakePayments exposes the payment side of the ledger.
type fakePayments struct {
	*fakeLedger
}

func (p fakePayments) Record(ctx context.Context, payment *models.Payment, deadline *models.Date, guard repository.BalanceGuard) (*models.FeeBalance, error) {
	l := p.fakeLedger
	l.mu.Lock()
	defer l.mu.Unlock()
	fee, ok := l.fees[payment.FeeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	paid, _ := l.paidLocked(fee.ID)
	before := models.FeeBalance{FeeID: fee.ID, Amount: fee.Amount, Paid: paid}
	if guard != nil {
		if err := guard(before); err != nil {
			return nil, err
		}
	}
	l.nextPayment++
	payment.ID = l.nextPayment
	payment.CreatedAt = time.Now()
	stored := *payment
	l.payments[payment.ID] = &stored
	if deadline != nil {
		d := *deadline
		fee.BalanceDeadline = &d
	}
	return &before, nil
}

func (p fakePayments) List(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentDetail, error) {
	l := p.fakeLedger
	l.mu.Lock()
	defer l.mu.Unlock()
	items := []models.PaymentDetail{}
	for _, pay := range l.payments {
		items = append(items, models.PaymentDetail{Payment: *pay, Period: l.fees[pay.FeeID].Period})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PaymentDate.After(items[j].PaymentDate.Time) })
	return items, nil
}

func (p fakePayments) Update(ctx context.Context, payment *models.Payment) error {
	l := p.fakeLedger
	l.mu.Lock()
	defer l.mu.Unlock()
	stored, ok := l.payments[payment.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Amount = payment.Amount
	stored.PaymentDate = payment.PaymentDate
	payment.FeeID = stored.FeeID
	payment.CreatedAt = stored.CreatedAt
	return nil
}

func (p fakePayments) Delete(ctx context.Context, id int64) error {
	l := p.fakeLedger
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.payments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(l.payments, id)
	return nil
}
