package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

type PasswordResetStore interface {
	CreateResetToken(ctx context.Context, tokenHash, adminID string, createdAt, expiresAt time.Time) error
	GetResetTokenByHash(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error)
	RedeemResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error
}

type ResetAdminsStore interface {
	GetAdminByEmail(ctx context.Context, email string) (domain.AdminWithPassword, error)
}

type PasswordResetService struct {
	Store    PasswordResetStore
	Admins   ResetAdminsStore
	TokenTTL time.Duration
	Now      func() time.Time
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PasswordResetService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return time.Hour
}

// RequestReset issues a reset token for the account behind email. When no
// such account exists it reports success with an empty token, so the
// endpoint's behavior never reveals whether an email is registered.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (token string, admin domain.Admin, err error) {
	a, err := s.Admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Admin{}, nil
		}
		return "", domain.Admin{}, err
	}

	raw, tokenHash, err := auth.NewToken()
	if err != nil {
		return "", domain.Admin{}, err
	}

	now := s.now()
	if err := s.Store.CreateResetToken(ctx, tokenHash, a.ID, now, now.Add(s.ttl())); err != nil {
		return "", domain.Admin{}, err
	}
	return raw, a.Admin, nil
}

// ResetPassword redeems a token once. Missing, already-used, and expired
// tokens all surface the same ErrResetTokenInvalid; the store performs the
// mark-used and hash rewrite in a single transaction. Existing sessions
// for the admin stay valid.
func (s *PasswordResetService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	tokenHash := auth.HashToken(rawToken)

	token, err := s.Store.GetResetTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}
	now := s.now()
	if token.UsedAt != nil || !token.ExpiresAt.After(now) {
		return domain.ErrResetTokenInvalid
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.Store.RedeemResetToken(ctx, tokenHash, hash, now)
}
