package models

import "github.com/shopspring/decimal"

// OverdueStudent is a row of the delinquency report.
type OverdueStudent struct {
	StudentID    int64           `db:"alumno_id" json:"alumno_id"`
	DNI          string          `db:"dni" json:"dni"`
	FirstName    string          `db:"nombres" json:"nombres"`
	LastName     string          `db:"apellidos" json:"apellidos"`
	Phone        string          `db:"telefono" json:"telefono"`
	OverdueCount int             `db:"mensualidades_vencidas" json:"mensualidades_vencidas"`
	TotalDebt    decimal.Decimal `db:"deuda_total" json:"deuda_total"`
}

// RevenuePeriod aggregates payments for one YYYY-MM bucket.
type RevenuePeriod struct {
	Period       string          `db:"periodo" json:"periodo"`
	PaymentCount int             `db:"total_pagos" json:"total_pagos"`
	Total        decimal.Decimal `db:"total_ingresos" json:"total_ingresos"`
}

// RevenueFilter selects the year and optional month of the revenue report.
type RevenueFilter struct {
	Year  int
	Month int
}

// GeneralStats is the dashboard snapshot.
type GeneralStats struct {
	TotalStudents     int             `db:"total_alumnos" json:"total_alumnos"`
	TotalCourses      int             `db:"total_cursos" json:"total_cursos"`
	ActiveEnrollments int             `db:"matriculas_activas" json:"matriculas_activas"`
	PendingFees       int             `db:"mensualidades_pendientes" json:"mensualidades_pendientes"`
	OverdueFees       int             `db:"mensualidades_vencidas" json:"mensualidades_vencidas"`
	MonthRevenue      decimal.Decimal `db:"ingresos_mes" json:"ingresos_mes"`
}
