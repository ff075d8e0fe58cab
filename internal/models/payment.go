package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money received against a single fee line-item.
type Payment struct {
	ID          int64           `db:"id" json:"id"`
	FeeID       int64           `db:"mensualidad_id" json:"mensualidad_id"`
	Amount      decimal.Decimal `db:"monto" json:"monto"`
	PaymentDate Date            `db:"fecha_pago" json:"fecha_pago"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// PaymentDetail joins a payment with the line-item and student it belongs to.
type PaymentDetail struct {
	Payment
	Period           string `db:"periodo" json:"periodo"`
	StudentFirstName string `db:"alumno_nombres" json:"alumno_nombres"`
	StudentLastName  string `db:"alumno_apellidos" json:"alumno_apellidos"`
	CourseName       string `db:"curso_nombre" json:"curso_nombre"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	Search string
}

// PaymentReceipt is returned after a payment is recorded.
type PaymentReceipt struct {
	Payment         Payment         `json:"pago"`
	BalanceAfter    decimal.Decimal `json:"saldo"`
	DisplayStatus   DisplayStatus   `json:"estado_pago"`
	BalanceDeadline *Date           `json:"fecha_limite_saldo"`
}
