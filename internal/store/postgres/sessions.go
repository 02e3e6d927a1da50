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

type SessionsStore struct {
	pool *pgxpool.Pool
}

func NewSessionsStore(pool *pgxpool.Pool) *SessionsStore {
	return &SessionsStore{pool: pool}
}

func (s *SessionsStore) CreateSession(ctx context.Context, tokenHash, adminID string, expiresAt time.Time) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (token_hash, admin_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, admin_id, created_at, expires_at
	`

	var (
		sess    domain.Session
		idUUID  pgtype.UUID
		adminUU pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, tokenHash, adminID, expiresAt).Scan(
		&idUUID,
		&adminUU,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}

	sess.ID = uuidOrEmpty(idUUID)
	sess.AdminID = uuidOrEmpty(adminUU)
	return sess, nil
}

// GetSessionByTokenHash resolves a live session. Expired rows are treated
// as absent; this is a read path and never deletes them.
func (s *SessionsStore) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	const q = `
		SELECT id, admin_id, created_at, expires_at
		FROM sessions
		WHERE token_hash = $1 AND expires_at > now()
	`

	var (
		sess    domain.Session
		idUUID  pgtype.UUID
		adminUU pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, tokenHash).Scan(
		&idUUID,
		&adminUU,
		&sess.CreatedAt,
		&sess.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	sess.ID = uuidOrEmpty(idUUID)
	sess.AdminID = uuidOrEmpty(adminUU)
	return sess, nil
}

// DeleteSessionByTokenHash removes a session on logout. Deleting a token
// that never existed or already expired is not an error.
func (s *SessionsStore) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	const q = `DELETE FROM sessions WHERE token_hash = $1`

	if _, err := s.pool.Exec(ctx, q, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired reclaims storage for sessions past their expiry. Resolution
// already ignores them; this only keeps the table from growing unbounded.
func (s *SessionsStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM sessions WHERE expires_at <= $1`

	tag, err := s.pool.Exec(ctx, q, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
