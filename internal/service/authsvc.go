package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

type AdminsStore interface {
	CreateFirstAdmin(ctx context.Context, email, name, passwordHash string) (domain.Admin, error)
	CreateAdmin(ctx context.Context, email, name string, role domain.AdminRole, passwordHash string) (domain.Admin, error)
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (domain.AdminWithPassword, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	SetLastLogin(ctx context.Context, adminID string, when time.Time) error
	SetAdminRole(ctx context.Context, adminID string, role domain.AdminRole) error
	DeleteAdmin(ctx context.Context, adminID string) error
}

type SessionsStore interface {
	CreateSession(ctx context.Context, tokenHash, adminID string, expiresAt time.Time) (domain.Session, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error
}

type AuthService struct {
	Admins     AdminsStore
	Sessions   SessionsStore
	SessionTTL time.Duration
	Now        func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup creates the very first admin with the super_admin role. Once any
// admin exists, self-service signup is closed for good; later accounts
// only come in through invites.
func (s *AuthService) Signup(ctx context.Context, email, name, password string) (domain.Admin, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.Admin{}, err
	}

	return s.Admins.CreateFirstAdmin(ctx, email, name, passwordHash)
}

// Login verifies credentials and issues a fresh session token. Unknown
// email and wrong password collapse into the same error so callers learn
// nothing about which part was wrong. The session row is committed before
// the token is returned, so the token is resolvable immediately.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Admin, string, error) {
	email = strings.TrimSpace(email)

	a, err := s.Admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Admin{}, "", domain.ErrInvalidCredentials
		}
		return domain.Admin{}, "", err
	}

	ok, err := auth.VerifyPassword(a.PasswordHash, password)
	if err != nil {
		return domain.Admin{}, "", err
	}
	if !ok {
		return domain.Admin{}, "", domain.ErrInvalidCredentials
	}

	raw, tokenHash, err := auth.NewToken()
	if err != nil {
		return domain.Admin{}, "", err
	}

	now := s.now()
	if _, err := s.Sessions.CreateSession(ctx, tokenHash, a.ID, now.Add(s.SessionTTL)); err != nil {
		return domain.Admin{}, "", err
	}

	// Best effort; a failed last-login stamp must not fail the login.
	_ = s.Admins.SetLastLogin(ctx, a.ID, now)
	a.LastLoginAt = &now

	return a.Admin, raw, nil
}

// Logout revokes the session behind the token. Idempotent: tokens that
// never existed, already expired, or were already logged out succeed too.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.DeleteSessionByTokenHash(ctx, auth.HashToken(token))
}

// GetAdminForSession resolves a session token to the owning admin.
// Expired or unknown tokens, and sessions whose admin has since been
// removed, all come back as ErrUnauthorized.
func (s *AuthService) GetAdminForSession(ctx context.Context, token string) (domain.Admin, error) {
	sess, err := s.Sessions.GetSessionByTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Admin{}, domain.ErrUnauthorized
		}
		return domain.Admin{}, err
	}

	a, err := s.Admins.GetAdminByID(ctx, sess.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Admin{}, domain.ErrUnauthorized
		}
		return domain.Admin{}, err
	}

	return a, nil
}

func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.Admins.EmailExists(ctx, strings.TrimSpace(email))
}
