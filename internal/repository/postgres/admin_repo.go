package postgres

import (
	"context"
	"errors"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetByEmail looks up an admin by exact email match. A missing row surfaces
// as NotFound; the login usecase is responsible for collapsing that into the
// same error as a wrong password.
func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT id, email, password_hash, role, is_active, login_attempts, last_login_at, created_at
              FROM admins WHERE email = $1`
	var a domain.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive,
		&a.LoginAttempts, &a.LastLoginAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Admin not found")
		}
		return nil, apperror.Internal(err)
	}
	return &a, nil
}

func (r *adminRepo) IncrementLoginAttempts(ctx context.Context, email string) (int, error) {
	var attempts int
	err := r.db.QueryRow(ctx,
		`UPDATE admins SET login_attempts = login_attempts + 1 WHERE email = $1 RETURNING login_attempts`,
		email,
	).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NotFound("Admin not found")
		}
		return 0, apperror.Internal(err)
	}
	return attempts, nil
}

func (r *adminRepo) ResetLoginAttempts(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE admins SET login_attempts = 0, last_login_at = now() WHERE email = $1`,
		email,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
