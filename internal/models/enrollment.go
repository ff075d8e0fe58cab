package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrollmentStatus represents the administrative state of an enrollment.
type EnrollmentStatus string

const (
	// EnrollmentStatusActive marks a running enrollment.
	EnrollmentStatusActive EnrollmentStatus = "ACTIVO"
	// EnrollmentStatusInactive marks a suspended enrollment.
	EnrollmentStatusInactive EnrollmentStatus = "INACTIVO"
	// EnrollmentStatusCompleted marks a finished enrollment.
	EnrollmentStatusCompleted EnrollmentStatus = "FINALIZADO"
)

// Valid reports whether the status is one of the known values.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusInactive, EnrollmentStatusCompleted:
		return true
	}
	return false
}

// Enrollment binds a student to a course for a given year.
type Enrollment struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"alumno_id" json:"alumno_id"`
	CourseID  int64            `db:"curso_id" json:"curso_id"`
	Year      int              `db:"anio" json:"anio"`
	StartDate Date             `db:"fecha_inicio" json:"fecha_inicio"`
	Amount    decimal.Decimal  `db:"monto" json:"monto"`
	Status    EnrollmentStatus `db:"estado" json:"estado"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// EnrollmentDetail joins the enrollment with its student, course and payment totals.
type EnrollmentDetail struct {
	Enrollment
	StudentFirstName string          `db:"alumno_nombres" json:"alumno_nombres"`
	StudentLastName  string          `db:"alumno_apellidos" json:"alumno_apellidos"`
	StudentDNI       string          `db:"alumno_dni" json:"alumno_dni"`
	CourseName       string          `db:"curso_nombre" json:"curso_nombre"`
	CourseLevel      string          `db:"curso_nivel" json:"curso_nivel"`
	TotalPaid        decimal.Decimal `db:"total_pagado" json:"total_pagado"`
	Balance          decimal.Decimal `db:"saldo" json:"saldo"`
}

// EnrollmentFilter narrows enrollment listings.
type EnrollmentFilter struct {
	Status    EnrollmentStatus
	Search    string
	StudentID int64
	CourseID  int64
}
