package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

type authCtxKey int

const (
	authAdminKey authCtxKey = iota
	authTokenKey
)

// requireAuth resolves the Bearer token to an admin on every call; there
// is no server-side caching of the identity between requests.
func (a *api) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r)
		if !ok {
			WriteDomainError(w, domain.ErrUnauthorized)
			return
		}

		admin, err := a.authSvc.GetAdminForSession(r.Context(), token)
		if err != nil {
			WriteDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), authAdminKey, admin)
		ctx = context.WithValue(ctx, authTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireRole is the single authorization gate for privileged routes.
// Every role check goes through here rather than being re-derived per
// handler.
func (a *api) requireRole(role domain.AdminRole, next http.HandlerFunc) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := CurrentAdmin(r.Context())
		if !ok || !Authorize(admin, role) {
			WriteDomainError(w, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authorize reports whether admin may act at the required role.
// super_admin subsumes admin.
func Authorize(admin domain.Admin, required domain.AdminRole) bool {
	switch required {
	case domain.RoleSuperAdmin:
		return admin.Role == domain.RoleSuperAdmin
	case domain.RoleAdmin:
		return admin.Role == domain.RoleAdmin || admin.Role == domain.RoleSuperAdmin
	default:
		return false
	}
}

func CurrentAdmin(ctx context.Context) (domain.Admin, bool) {
	a, ok := ctx.Value(authAdminKey).(domain.Admin)
	return a, ok
}

func CurrentToken(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(authTokenKey).(string)
	return t, ok
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
