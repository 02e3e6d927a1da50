package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"primehavenwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminsStore struct {
	pool *pgxpool.Pool
}

func NewAdminsStore(pool *pgxpool.Pool) *AdminsStore {
	return &AdminsStore{pool: pool}
}

// CreateFirstAdmin inserts the bootstrap super_admin, but only while the
// table is empty. The empty-table gate and the insert are one statement,
// so two racing signups cannot both succeed.
func (s *AdminsStore) CreateFirstAdmin(ctx context.Context, email, name, passwordHash string) (domain.Admin, error) {
	const q = `
		INSERT INTO admins (email, name, role, password_hash)
		SELECT $1, $2, 'super_admin', $3
		WHERE NOT EXISTS (SELECT 1 FROM admins)
		RETURNING id, email, name, role, created_at, last_login_at
	`

	a, err := scanAdminRow(s.pool.QueryRow(ctx, q, email, name, passwordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Admin{}, domain.ErrSignupClosed
		}
		return domain.Admin{}, mapAdminWriteError(err)
	}
	return a, nil
}

func (s *AdminsStore) CreateAdmin(ctx context.Context, email, name string, role domain.AdminRole, passwordHash string) (domain.Admin, error) {
	const q = `
		INSERT INTO admins (email, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, role, created_at, last_login_at
	`

	a, err := scanAdminRow(s.pool.QueryRow(ctx, q, email, name, role, passwordHash))
	if err != nil {
		return domain.Admin{}, mapAdminWriteError(err)
	}
	return a, nil
}

func (s *AdminsStore) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	const q = `
		SELECT id, email, name, role, created_at, last_login_at
		FROM admins
		WHERE id = $1
	`

	a, err := scanAdminRow(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Admin{}, domain.ErrNotFound
		}
		return domain.Admin{}, fmt.Errorf("get admin by id: %w", err)
	}
	return a, nil
}

func (s *AdminsStore) GetAdminByEmail(ctx context.Context, email string) (domain.AdminWithPassword, error) {
	const q = `
		SELECT id, email, name, role, password_hash, created_at, last_login_at
		FROM admins
		WHERE email = $1
		LIMIT 1
	`

	var (
		a           domain.AdminWithPassword
		idUUID      pgtype.UUID
		lastLoginTS pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, q, email).Scan(
		&idUUID,
		&a.Email,
		&a.Name,
		&a.Role,
		&a.PasswordHash,
		&a.CreatedAt,
		&lastLoginTS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AdminWithPassword{}, domain.ErrNotFound
		}
		return domain.AdminWithPassword{}, fmt.Errorf("get admin by email: %w", err)
	}

	a.ID = uuidOrEmpty(idUUID)
	a.LastLoginAt = timestamptzPtr(lastLoginTS)
	return a, nil
}

func (s *AdminsStore) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check admin email: %w", err)
	}
	return exists, nil
}

func (s *AdminsStore) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	const q = `
		SELECT id, email, name, role, created_at, last_login_at
		FROM admins
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []domain.Admin
	for rows.Next() {
		a, err := scanAdminRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return out, nil
}

func (s *AdminsStore) SetLastLogin(ctx context.Context, adminID string, when time.Time) error {
	const q = `UPDATE admins SET last_login_at = $2 WHERE id = $1`

	if _, err := s.pool.Exec(ctx, q, adminID, when); err != nil {
		return fmt.Errorf("set last login: %w", err)
	}
	return nil
}

func (s *AdminsStore) SetAdminRole(ctx context.Context, adminID string, role domain.AdminRole) error {
	const q = `UPDATE admins SET role = $2 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, adminID, role)
	if err != nil {
		return fmt.Errorf("set admin role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *AdminsStore) DeleteAdmin(ctx context.Context, adminID string) error {
	const q = `DELETE FROM admins WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, adminID)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdminRow(row rowScanner) (domain.Admin, error) {
	var (
		a           domain.Admin
		idUUID      pgtype.UUID
		lastLoginTS pgtype.Timestamptz
	)
	err := row.Scan(
		&idUUID,
		&a.Email,
		&a.Name,
		&a.Role,
		&a.CreatedAt,
		&lastLoginTS,
	)
	if err != nil {
		return domain.Admin{}, err
	}

	a.ID = uuidOrEmpty(idUUID)
	a.LastLoginAt = timestamptzPtr(lastLoginTS)
	return a, nil
}

func mapAdminWriteError(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		if pgerr.ConstraintName == "admins_email_uq" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("unique violation (%s): %w", pgerr.ConstraintName, err)
	}
	return fmt.Errorf("create admin: %w", err)
}
