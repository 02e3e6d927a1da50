package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

type stubResetStore struct {
	t *testing.T

	createFunc func(context.Context, string, string, time.Time, time.Time) error
	getFunc    func(context.Context, string) (domain.PasswordResetToken, error)
	redeemFunc func(context.Context, string, string, time.Time) error
}

func (s *stubResetStore) CreateResetToken(ctx context.Context, tokenHash, adminID string, createdAt, expiresAt time.Time) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, tokenHash, adminID, createdAt, expiresAt)
	}
	s.t.Fatalf("CreateResetToken called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubResetStore) GetResetTokenByHash(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, tokenHash)
	}
	s.t.Fatalf("GetResetTokenByHash called unexpectedly")
	return domain.PasswordResetToken{}, errors.New("unexpected call")
}

func (s *stubResetStore) RedeemResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error {
	if s.redeemFunc != nil {
		return s.redeemFunc(ctx, tokenHash, newPasswordHash, now)
	}
	s.t.Fatalf("RedeemResetToken called unexpectedly")
	return errors.New("unexpected call")
}

type stubResetAdmins struct {
	getAdminByEmailFunc func(context.Context, string) (domain.AdminWithPassword, error)
}

func (s *stubResetAdmins) GetAdminByEmail(ctx context.Context, email string) (domain.AdminWithPassword, error) {
	return s.getAdminByEmailFunc(ctx, email)
}

func TestRequestResetUnknownEmailReportsSuccess(t *testing.T) {
	svc := &PasswordResetService{
		Store: &stubResetStore{t: t},
		Admins: &stubResetAdmins{
			getAdminByEmailFunc: func(_ context.Context, _ string) (domain.AdminWithPassword, error) {
				return domain.AdminWithPassword{}, domain.ErrNotFound
			},
		},
	}

	token, admin, err := svc.RequestReset(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if token != "" || admin.ID != "" {
		t.Fatalf("expected empty result for unknown email, got token=%q admin=%#v", token, admin)
	}
}

func TestRequestResetIssuesHashedToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var storedHash string
	var storedExpiry time.Time
	store := &stubResetStore{
		t: t,
		createFunc: func(_ context.Context, tokenHash, adminID string, createdAt, expiresAt time.Time) error {
			if adminID != "admin-1" {
				t.Fatalf("unexpected admin id: %s", adminID)
			}
			if !createdAt.Equal(now) {
				t.Fatalf("unexpected created at: %s", createdAt)
			}
			storedHash = tokenHash
			storedExpiry = expiresAt
			return nil
		},
	}

	svc := &PasswordResetService{
		Store: store,
		Admins: &stubResetAdmins{
			getAdminByEmailFunc: func(_ context.Context, email string) (domain.AdminWithPassword, error) {
				return domain.AdminWithPassword{Admin: domain.Admin{ID: "admin-1", Email: email}}, nil
			},
		},
		TokenTTL: time.Hour,
		Now:      func() time.Time { return now },
	}

	token, admin, err := svc.RequestReset(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if admin.ID != "admin-1" {
		t.Fatalf("unexpected admin: %#v", admin)
	}
	if auth.HashToken(token) != storedHash {
		t.Fatalf("stored hash does not match issued token")
	}
	if want := now.Add(time.Hour); !storedExpiry.Equal(want) {
		t.Fatalf("unexpected expiry: got %s want %s", storedExpiry, want)
	}
}

func TestResetPasswordRejectsMissingUsedAndExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	used := now.Add(-10 * time.Minute)

	cases := []struct {
		name  string
		token domain.PasswordResetToken
		err   error
	}{
		{name: "missing", err: domain.ErrNotFound},
		{name: "used", token: domain.PasswordResetToken{ExpiresAt: now.Add(time.Hour), UsedAt: &used}},
		{name: "expired", token: domain.PasswordResetToken{ExpiresAt: now.Add(-time.Minute)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubResetStore{
				t: t,
				getFunc: func(_ context.Context, _ string) (domain.PasswordResetToken, error) {
					if tc.err != nil {
						return domain.PasswordResetToken{}, tc.err
					}
					return tc.token, nil
				},
			}

			svc := &PasswordResetService{
				Store: store,
				Now:   func() time.Time { return now },
			}
			err := svc.ResetPassword(context.Background(), "raw-token", "newpassword123")
			if !errors.Is(err, domain.ErrResetTokenInvalid) {
				t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
			}
		})
	}
}

func TestResetPasswordRedeemsOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, tokenHash, err := auth.NewToken()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}

	var redeemedHash, newHash string
	store := &stubResetStore{
		t: t,
		getFunc: func(_ context.Context, h string) (domain.PasswordResetToken, error) {
			if h != tokenHash {
				t.Fatalf("lookup used %q, want %q", h, tokenHash)
			}
			return domain.PasswordResetToken{ID: "reset-1", AdminID: "admin-1", TokenHash: h, ExpiresAt: now.Add(30 * time.Minute)}, nil
		},
		redeemFunc: func(_ context.Context, h, passwordHash string, when time.Time) error {
			if !when.Equal(now) {
				t.Fatalf("unexpected redeem time: %s", when)
			}
			redeemedHash = h
			newHash = passwordHash
			return nil
		},
	}

	svc := &PasswordResetService{
		Store: store,
		Now:   func() time.Time { return now },
	}
	if err := svc.ResetPassword(context.Background(), raw, "newpassword123"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if redeemedHash != tokenHash {
		t.Fatalf("redeemed %q, want %q", redeemedHash, tokenHash)
	}
	ok, err := auth.VerifyPassword(newHash, "newpassword123")
	if err != nil || !ok {
		t.Fatalf("new hash does not verify: ok=%v err=%v", ok, err)
	}
}
