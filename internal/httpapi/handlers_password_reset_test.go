package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
	"primehavenwebserver/internal/service"
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

func TestForgotPasswordDevModeReturnsToken(t *testing.T) {
	var storedHash string
	api := &api{
		logger: slog.Default(),
		resetSvc: &service.PasswordResetService{
			Store: &stubResetStore{
				t: t,
				createFunc: func(_ context.Context, tokenHash, adminID string, _, _ time.Time) error {
					if adminID != "admin-1" {
						t.Fatalf("unexpected admin id: %s", adminID)
					}
					storedHash = tokenHash
					return nil
				},
			},
			Admins: &stubAdminsStore{
				t: t,
				getAdminByEmailFunc: func(_ context.Context, _ string) (domain.AdminWithPassword, error) {
					return domain.AdminWithPassword{Admin: domain.Admin{ID: "admin-1", Email: "a@example.com"}}, nil
				},
			},
		},
		loginLimiter: newLoginLimiter(),
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/forgot", strings.NewReader(`{"email":"a@example.com"}`))
	req.RemoteAddr = "192.0.2.1:40000"
	rr := httptest.NewRecorder()
	api.handleForgotPassword(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body)
	}
	var got map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if auth.HashToken(got["token"]) != storedHash {
		t.Fatalf("returned token does not match stored hash")
	}
}

func TestForgotPasswordUnknownEmailIndistinguishable(t *testing.T) {
	api := &api{
		logger: slog.Default(),
		resetSvc: &service.PasswordResetService{
			Store: &stubResetStore{t: t},
			Admins: &stubAdminsStore{
				t: t,
				getAdminByEmailFunc: func(_ context.Context, _ string) (domain.AdminWithPassword, error) {
					return domain.AdminWithPassword{}, domain.ErrNotFound
				},
			},
		},
		loginLimiter: newLoginLimiter(),
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/forgot", strings.NewReader(`{"email":"nobody@example.com"}`))
	req.RemoteAddr = "192.0.2.1:40000"
	rr := httptest.NewRecorder()
	api.handleForgotPassword(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body)
	}
}

func TestResetPasswordInvalidTokenIs400(t *testing.T) {
	api := &api{
		resetSvc: &service.PasswordResetService{
			Store: &stubResetStore{
				t: t,
				getFunc: func(_ context.Context, _ string) (domain.PasswordResetToken, error) {
					return domain.PasswordResetToken{}, domain.ErrNotFound
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/reset", strings.NewReader(`{"token":"bogus","password":"newpassword123"}`))
	rr := httptest.NewRecorder()
	api.handleResetPassword(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid or expired reset token") {
		t.Fatalf("unexpected body: %s", rr.Body)
	}
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	api := &api{}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/reset", strings.NewReader(`{"token":"some-token","password":"short"}`))
	rr := httptest.NewRecorder()
	api.handleResetPassword(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "validation_error") {
		t.Fatalf("unexpected body: %s", rr.Body)
	}
}
