package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"primehavenwebserver/internal/config"
	"primehavenwebserver/internal/email"
	"primehavenwebserver/internal/httpapi"
	"primehavenwebserver/internal/service"
	"primehavenwebserver/internal/store/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	var (
		authSvc       *service.AuthService
		adminsSvc     *service.AdminsService
		resetSvc      *service.PasswordResetService
		propertiesSvc *service.PropertiesService
		repsSvc       *service.RepresentativesService
		contentSvc    *service.SiteContentService
		contactSvc    *service.ContactService
		newsletterSvc *service.NewsletterService
		dbPing        func(context.Context) error
	)

	var sweeper *cron.Cron

	if cfg.DBDSN != "" {
		if err := postgres.Migrate(cfg.DBDSN); err != nil {
			logger.Error("db migrate failed", "err", err)
			os.Exit(1)
		}

		pgPool, err := postgres.Open(context.Background(), cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		admins := postgres.NewAdminsStore(pgPool)
		sessions := postgres.NewSessionsStore(pgPool)
		resets := postgres.NewPasswordResetStore(pgPool)
		properties := postgres.NewPropertiesStore(pgPool)
		reps := postgres.NewRepresentativesStore(pgPool)
		content := postgres.NewSiteContentStore(pgPool)
		contacts := postgres.NewContactsStore(pgPool)
		newsletter := postgres.NewNewsletterStore(pgPool)

		authSvc = &service.AuthService{
			Admins:     admins,
			Sessions:   sessions,
			SessionTTL: cfg.SessionTTL,
		}
		adminsSvc = &service.AdminsService{Admins: admins}
		resetSvc = &service.PasswordResetService{
			Store:    resets,
			Admins:   admins,
			TokenTTL: cfg.ResetTTL,
		}
		propertiesSvc = &service.PropertiesService{Store: properties}
		repsSvc = &service.RepresentativesService{Store: reps}
		contentSvc = &service.SiteContentService{Store: content}
		contactSvc = &service.ContactService{Store: contacts}
		newsletterSvc = &service.NewsletterService{Store: newsletter}
		dbPing = pgPool.Ping

		sweeper = cron.New()
		_, err = sweeper.AddFunc("@hourly", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			now := time.Now()
			if n, err := sessions.DeleteExpired(ctx, now); err != nil {
				logger.Error("session sweep failed", "err", err)
			} else if n > 0 {
				logger.Info("swept expired sessions", "count", n)
			}
			if n, err := resets.DeleteExpired(ctx, now); err != nil {
				logger.Error("reset token sweep failed", "err", err)
			} else if n > 0 {
				logger.Info("swept reset tokens", "count", n)
			}
		})
		if err != nil {
			logger.Error("sweep schedule failed", "err", err)
			os.Exit(1)
		}
		sweeper.Start()
		defer sweeper.Stop()
	}

	var emailSvc *service.EmailService
	if cfg.SMTP.Enabled() {
		emailSvc = &service.EmailService{
			Settings: email.SMTPSettings{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.Username,
				Password: cfg.SMTP.Password,
				TLSMode:  cfg.SMTP.TLSMode,
			},
			FromEmail: cfg.SMTP.FromEmail,
			FromName:  cfg.SMTP.FromName,
		}
		logger.Info("smtp enabled", "host", cfg.SMTP.Host, "from", cfg.SMTP.FromEmail)
	} else {
		logger.Info("smtp disabled")
	}

	router := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:     logger,
		IsProd:     cfg.IsProd(),
		DBPing:     dbPing,
		PublicURL:  cfg.PublicURL,
		Auth:       authSvc,
		Admins:     adminsSvc,
		Reset:      resetSvc,
		Email:      emailSvc,
		Properties: propertiesSvc,
		Reps:       repsSvc,
		Content:    contentSvc,
		Contact:    contactSvc,
		Newsletter: newsletterSvc,
		UploadDir:  cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
