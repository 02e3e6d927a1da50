package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"primehavenwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PasswordResetStore struct {
	pool *pgxpool.Pool
}

func NewPasswordResetStore(pool *pgxpool.Pool) *PasswordResetStore {
	return &PasswordResetStore{pool: pool}
}

func (s *PasswordResetStore) CreateResetToken(ctx context.Context, tokenHash, adminID string, createdAt, expiresAt time.Time) error {
	const q = `
		INSERT INTO password_reset_tokens (token_hash, admin_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.pool.Exec(ctx, q, tokenHash, adminID, createdAt, expiresAt); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

func (s *PasswordResetStore) GetResetTokenByHash(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error) {
	const q = `
		SELECT id, admin_id, token_hash, created_at, expires_at, used_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`

	var (
		token   domain.PasswordResetToken
		idUUID  pgtype.UUID
		adminUU pgtype.UUID
		usedTS  pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, q, tokenHash).Scan(
		&idUUID,
		&adminUU,
		&token.TokenHash,
		&token.CreatedAt,
		&token.ExpiresAt,
		&usedTS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PasswordResetToken{}, domain.ErrNotFound
		}
		return domain.PasswordResetToken{}, fmt.Errorf("get reset token: %w", err)
	}

	token.ID = uuidOrEmpty(idUUID)
	token.AdminID = uuidOrEmpty(adminUU)
	token.UsedAt = timestamptzPtr(usedTS)
	return token, nil
}

// RedeemResetToken marks the token used and rewrites the owning admin's
// password hash in one transaction. Either both writes commit or neither
// does; the guarded first UPDATE also re-checks unused and unexpired so a
// concurrent redemption of the same token cannot double-apply.
func (s *PasswordResetStore) RedeemResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin redeem: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const markUsed = `
		UPDATE password_reset_tokens
		SET used_at = $2
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > $2
		RETURNING admin_id
	`

	var adminUU pgtype.UUID
	if err := tx.QueryRow(ctx, markUsed, tokenHash, now).Scan(&adminUU); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrResetTokenInvalid
		}
		return fmt.Errorf("mark reset token used: %w", err)
	}

	const setHash = `UPDATE admins SET password_hash = $2 WHERE id = $1`

	tag, err := tx.Exec(ctx, setHash, uuidOrEmpty(adminUU), newPasswordHash)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Admin removed since the token was issued; the rollback leaves
		// the token unused, but it is unredeemable either way.
		return domain.ErrResetTokenInvalid
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit redeem: %w", err)
	}
	return nil
}

// DeleteExpired reclaims storage for tokens that are expired or spent.
func (s *PasswordResetStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM password_reset_tokens WHERE expires_at <= $1 OR used_at IS NOT NULL`

	tag, err := s.pool.Exec(ctx, q, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
