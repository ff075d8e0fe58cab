package models

import (
	"github.com/shopspring/decimal"
)

// FeeStatus is the persisted state of a fee line-item.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "PENDIENTE"
	FeeStatusOverdue FeeStatus = "VENCIDO"
)

// DisplayStatus is derived from the balance on every read and never stored.
type DisplayStatus string

const (
	DisplayStatusPaid    DisplayStatus = "PAGADO"
	DisplayStatusPartial DisplayStatus = "PAGO PARCIAL"
	DisplayStatusPending DisplayStatus = "PENDIENTE"
)

// ResolveDisplayStatus classifies a line-item from its amount due and the sum paid.
// A zero or negative balance is PAGADO regardless of the persisted status.
func ResolveDisplayStatus(amount, paid decimal.Decimal) DisplayStatus {
	if amount.Sub(paid).LessThanOrEqual(decimal.Zero) {
		return DisplayStatusPaid
	}
	if paid.GreaterThan(decimal.Zero) {
		return DisplayStatusPartial
	}
	return DisplayStatusPending
}

// Fee is a monthly charge (mensualidad) owed under an enrollment.
type Fee struct {
	ID              int64           `db:"id" json:"id"`
	EnrollmentID    int64           `db:"matricula_id" json:"matricula_id"`
	Period          string          `db:"periodo" json:"periodo"`
	Amount          decimal.Decimal `db:"monto" json:"monto"`
	StartDate       Date            `db:"fecha_inicio" json:"fecha_inicio"`
	DueDate         Date            `db:"fecha_vencimiento" json:"fecha_vencimiento"`
	BalanceDeadline *Date           `db:"fecha_limite_saldo" json:"fecha_limite_saldo"`
	Status          FeeStatus       `db:"estado" json:"estado"`
}

// FeeView is the read projection of a line-item with its payment aggregate.
type FeeView struct {
	Fee
	StudentID        int64           `db:"alumno_id" json:"alumno_id"`
	StudentFirstName string          `db:"alumno_nombres" json:"alumno_nombres"`
	StudentLastName  string          `db:"alumno_apellidos" json:"alumno_apellidos"`
	CourseName       string          `db:"curso_nombre" json:"curso_nombre"`
	Paid             decimal.Decimal `db:"pagado" json:"pagado"`
	Balance          decimal.Decimal `db:"saldo" json:"saldo"`
	FirstPaymentDate *Date           `db:"fecha_primer_pago" json:"fecha_primer_pago"`
	DisplayStatus    DisplayStatus   `db:"-" json:"estado_pago"`
}

// FeeFilter narrows line-item listings.
type FeeFilter struct {
	Search       string
	Status       FeeStatus
	EnrollmentID int64
}

// FeeBalance is the locked snapshot read before a payment is recorded.
type FeeBalance struct {
	FeeID  int64           `db:"id"`
	Amount decimal.Decimal `db:"monto"`
	Paid   decimal.Decimal `db:"pagado"`
}

// Balance returns amount due minus the sum paid.
func (b FeeBalance) Balance() decimal.Decimal {
	return b.Amount.Sub(b.Paid)
}

// OverdueFee identifies a line-item flipped to VENCIDO by the reclassification job.
type OverdueFee struct {
	ID      int64  `db:"id" json:"id"`
	Period  string `db:"periodo" json:"periodo"`
	DueDate Date   `db:"fecha_vencimiento" json:"fecha_vencimiento"`
}

// OverdueRun summarises one reclassification pass.
type OverdueRun struct {
	Today        Date         `json:"fecha_corte"`
	Reclassified int          `json:"total"`
	Items        []OverdueFee `json:"items"`
	Skipped      bool         `json:"omitido,omitempty"`
}
