package httpapi

import (
	"net/http"
	"strings"
	"time"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

type adminResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func toAdminResponse(a domain.Admin) adminResponse {
	return adminResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Role:        string(a.Role),
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

func writeAdmin(w http.ResponseWriter, status int, a domain.Admin) {
	WriteJSON(w, status, toAdminResponse(a))
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

// handleSignup is the bootstrap path: it only succeeds while the admins
// table is empty, and the account it creates is always a super_admin.
func (a *api) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	fields := map[string]string{}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if !validEmail(req.Email) {
		fields["email"] = "must be a valid email"
	}
	if req.Name == "" {
		fields["name"] = "required"
	}
	if len(req.Password) < minPasswordLen {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	admin, err := a.authSvc.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeAdmin(w, http.StatusCreated, admin)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "required", "password": "required"}))
		return
	}

	now := time.Now()
	ip := clientIP(r)
	if !a.loginLimiter.Allow("ip:"+ip, now) || !a.loginLimiter.Allow("email:"+req.Email, now) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
		return
	}

	admin, token, err := a.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sessionResponse{Token: token, Admin: toAdminResponse(admin)})
}

// handleLogout revokes the presented token. It succeeds even when the
// token is already gone, so retries are harmless.
func (a *api) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	if err := a.authSvc.Logout(r.Context(), token); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	admin, ok := CurrentAdmin(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}
	writeAdmin(w, http.StatusOK, admin)
}

func (a *api) handleEmailExists(w http.ResponseWriter, r *http.Request) {
	email := normalizeEmail(r.URL.Query().Get("email"))
	if !validEmail(email) {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "must be a valid email"}))
		return
	}

	exists, err := a.authSvc.EmailExists(r.Context(), email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}
