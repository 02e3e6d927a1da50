package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"primehavenwebserver/internal/domain"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// handleForgotPassword always reports success for well-formed requests,
// whether or not the email belongs to an admin. Outside production the
// token is echoed in the response so the flow can be exercised without
// a mail server.
func (a *api) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "must be a valid email"}))
		return
	}

	now := time.Now()
	ip := clientIP(r)
	if !a.loginLimiter.Allow("forgot:ip:"+ip, now) || !a.loginLimiter.Allow("forgot:email:"+email, now) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
		return
	}

	token, admin, err := a.resetSvc.RequestReset(r.Context(), email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if token != "" && a.emailSvc != nil && a.emailSvc.Enabled() {
		resetURL := a.resetLink(r, token)
		if err := a.emailSvc.SendPasswordReset(r.Context(), admin.Email, resetURL); err != nil {
			a.logger.Error("send reset email failed", "err", err)
			WriteError(w, http.StatusInternalServerError, "reset_failed", "failed to send reset email")
			return
		}
	}

	if !a.isProd && token != "" {
		WriteJSON(w, http.StatusOK, map[string]string{"token": token})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" || req.Password == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"token": "required", "password": "required"}))
		return
	}
	if len(req.Password) < minPasswordLen {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"password": "must be at least 8 characters"}))
		return
	}

	if err := a.resetSvc.ResetPassword(r.Context(), token, req.Password); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) resetLink(r *http.Request, token string) string {
	if a.publicURL != nil {
		u := *a.publicURL
		u.Path = "/admin/reset"
		u.RawQuery = "token=" + url.QueryEscape(token)
		return u.String()
	}
	scheme := "http"
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s/admin/reset?token=%s", scheme, r.Host, url.QueryEscape(token))
}
