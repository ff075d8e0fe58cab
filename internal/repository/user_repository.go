package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ingenio-api/internal/models"
)

// UserRepository provides database access for operator credentials.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, password, rol, estado, created_at FROM usuarios WHERE username = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// Create inserts a credential. A taken username surfaces as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO usuarios (username, password, rol, estado) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.Role, user.Active).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

// UpsertAdmin creates or resets a credential to the given hash and role, marking it active.
func (r *UserRepository) UpsertAdmin(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO usuarios (username, password, rol, estado) VALUES ($1, $2, $3, true)
        ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, rol = EXCLUDED.rol, estado = true
        RETURNING id, created_at`
	if err := r.db.QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.Role).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	user.Active = true
	return nil
}
