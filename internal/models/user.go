package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "usuario"
)

// User represents an operator credential stored in the usuarios table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password" json:"-"`
	Role         UserRole  `db:"rol" json:"rol"`
	Active       bool      `db:"estado" json:"estado"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
