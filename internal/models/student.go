package models

import "time"

// Student represents a learner registered in the school.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	DNI       string    `db:"dni" json:"dni"`
	FirstName string    `db:"nombres" json:"nombres"`
	LastName  string    `db:"apellidos" json:"apellidos"`
	Phone     string    `db:"telefono" json:"telefono"`
	Grade     string    `db:"grado" json:"grado"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search string
	Grade  string
}

// StudentSummary is the compact student shape embedded in guardian payloads.
type StudentSummary struct {
	ID        int64  `db:"id" json:"id"`
	DNI       string `db:"dni" json:"dni"`
	FirstName string `db:"nombres" json:"nombres"`
	LastName  string `db:"apellidos" json:"apellidos"`
}
