package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is an offering students enroll into. (Name, Level) is unique.
type Course struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"nombre" json:"nombre"`
	Level     string          `db:"nivel" json:"nivel"`
	BasePrice decimal.Decimal `db:"precio_base" json:"precio_base"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	Search string
	Level  string
}
