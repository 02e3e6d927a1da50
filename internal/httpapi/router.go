package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"primehavenwebserver/internal/domain"
	"primehavenwebserver/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing    func(context.Context) error
	PublicURL *url.URL

	Auth       *service.AuthService
	Admins     *service.AdminsService
	Reset      *service.PasswordResetService
	Email      *service.EmailService
	Properties *service.PropertiesService
	Reps       *service.RepresentativesService
	Content    *service.SiteContentService
	Contact    *service.ContactService
	Newsletter *service.NewsletterService

	UploadDir string
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.UploadDir == "" {
		opts.UploadDir = "data/uploads"
	}

	api := &api{
		logger:        logger,
		isProd:        opts.IsProd,
		dbPing:        opts.DBPing,
		publicURL:     opts.PublicURL,
		authSvc:       opts.Auth,
		adminsSvc:     opts.Admins,
		resetSvc:      opts.Reset,
		emailSvc:      opts.Email,
		propertiesSvc: opts.Properties,
		repsSvc:       opts.Reps,
		contentSvc:    opts.Content,
		contactSvc:    opts.Contact,
		newsletterSvc: opts.Newsletter,
		uploadDir:     opts.UploadDir,
		loginLimiter:  newLoginLimiter(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", api.handleHealthz)

	// Auth and session lifecycle.
	mux.HandleFunc("GET /v1/auth/email-exists", api.handleEmailExists)
	mux.HandleFunc("POST /v1/auth/signup", api.handleSignup)
	mux.HandleFunc("POST /v1/auth/login", api.handleLogin)
	mux.HandleFunc("POST /v1/auth/logout", api.handleLogout)
	mux.HandleFunc("GET /v1/auth/me", api.requireAuth(api.handleMe))
	mux.HandleFunc("POST /v1/auth/forgot", api.handleForgotPassword)
	mux.HandleFunc("POST /v1/auth/reset", api.handleResetPassword)

	// Public site surface.
	mux.HandleFunc("GET /v1/properties", api.handlePropertiesList)
	mux.HandleFunc("GET /v1/properties/{id}", api.handlePropertyGet)
	mux.HandleFunc("GET /v1/representatives", api.handleRepresentativesList)
	mux.HandleFunc("GET /v1/content", api.handleContentGetAll)
	mux.HandleFunc("GET /v1/content/{key}", api.handleContentGet)
	mux.HandleFunc("POST /v1/contact", api.handleContactSubmit)
	mux.HandleFunc("POST /v1/newsletter/subscribe", api.handleNewsletterSubscribe)
	mux.HandleFunc("POST /v1/newsletter/unsubscribe", api.handleNewsletterUnsubscribe)

	// Admin back-office. Any admin role can manage content; account
	// administration is super_admin only.
	mux.HandleFunc("POST /v1/admin/properties", api.requireRole(domain.RoleAdmin, api.handlePropertyCreate))
	mux.HandleFunc("PATCH /v1/admin/properties/{id}", api.requireRole(domain.RoleAdmin, api.handlePropertyUpdate))
	mux.HandleFunc("DELETE /v1/admin/properties/{id}", api.requireRole(domain.RoleAdmin, api.handlePropertyDelete))
	mux.HandleFunc("GET /v1/admin/properties/stats", api.requireRole(domain.RoleAdmin, api.handlePropertyStats))

	mux.HandleFunc("POST /v1/admin/representatives", api.requireRole(domain.RoleAdmin, api.handleRepresentativeCreate))
	mux.HandleFunc("PATCH /v1/admin/representatives/{id}", api.requireRole(domain.RoleAdmin, api.handleRepresentativeUpdate))
	mux.HandleFunc("DELETE /v1/admin/representatives/{id}", api.requireRole(domain.RoleAdmin, api.handleRepresentativeDelete))

	mux.HandleFunc("PUT /v1/admin/content/{key}", api.requireRole(domain.RoleAdmin, api.handleContentSet))

	mux.HandleFunc("GET /v1/admin/contacts", api.requireRole(domain.RoleAdmin, api.handleContactsList))
	mux.HandleFunc("POST /v1/admin/contacts/{id}/read", api.requireRole(domain.RoleAdmin, api.handleContactMarkRead))
	mux.HandleFunc("POST /v1/admin/contacts/{id}/replied", api.requireRole(domain.RoleAdmin, api.handleContactMarkReplied))
	mux.HandleFunc("DELETE /v1/admin/contacts/{id}", api.requireRole(domain.RoleAdmin, api.handleContactDelete))

	mux.HandleFunc("GET /v1/admin/newsletter", api.requireRole(domain.RoleAdmin, api.handleNewsletterList))
	mux.HandleFunc("GET /v1/admin/newsletter/stats", api.requireRole(domain.RoleAdmin, api.handleNewsletterStats))
	mux.HandleFunc("DELETE /v1/admin/newsletter/{id}", api.requireRole(domain.RoleAdmin, api.handleNewsletterDelete))

	mux.HandleFunc("GET /v1/admin/admins", api.requireRole(domain.RoleSuperAdmin, api.handleAdminsList))
	mux.HandleFunc("POST /v1/admin/admins", api.requireRole(domain.RoleSuperAdmin, api.handleAdminInvite))
	mux.HandleFunc("PATCH /v1/admin/admins/{id}/role", api.requireRole(domain.RoleSuperAdmin, api.handleAdminUpdateRole))
	mux.HandleFunc("DELETE /v1/admin/admins/{id}", api.requireRole(domain.RoleSuperAdmin, api.handleAdminRemove))

	mux.HandleFunc("POST /v1/admin/uploads", api.requireRole(domain.RoleAdmin, api.handleUpload))
	mux.HandleFunc("GET /uploads/{name}", api.handleUploadGet)

	var h http.Handler = mux
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing    func(context.Context) error
	publicURL *url.URL

	authSvc       *service.AuthService
	adminsSvc     *service.AdminsService
	resetSvc      *service.PasswordResetService
	emailSvc      *service.EmailService
	propertiesSvc *service.PropertiesService
	repsSvc       *service.RepresentativesService
	contentSvc    *service.SiteContentService
	contactSvc    *service.ContactService
	newsletterSvc *service.NewsletterService

	uploadDir string

	loginLimiter *loginLimiter
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
