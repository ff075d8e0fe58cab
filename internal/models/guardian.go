package models

import "time"

// Guardian is a responsible adult linked to one or more students.
type Guardian struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"nombres" json:"nombres"`
	Phone     string    `db:"telefono" json:"telefono"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GuardianDetail carries the guardian with its linked students.
type GuardianDetail struct {
	Guardian
	Students []StudentSummary `json:"alumnos"`
}

// GuardianFilter narrows guardian listings.
type GuardianFilter struct {
	Search string
}

// GuardianStudent is a link row joined with the student it points at.
type GuardianStudent struct {
	GuardianID int64 `db:"apoderado_id"`
	StudentSummary
}
