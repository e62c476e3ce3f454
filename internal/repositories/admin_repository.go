package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "helishuttle/internal/config"
	"helishuttle/internal/domain"
	"helishuttle/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AdminRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var (
		a         models.Admin
		createdAt sql.NullTime
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	a.CreatedAt = createdAt.Time
	return a, nil
}

// Upsert stores the admin, replacing the password hash of an existing email.
func (r AdminRepository) Upsert(ctx context.Context, email, passwordHash string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash), id = LAST_INSERT_ID(id)
	`, email, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("upsert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("admin id: %w", err)
	}
	return id, nil
}
