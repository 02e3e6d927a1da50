package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env       string
	Addr      string
	PublicURL *url.URL
	DBDSN     string
	LogLevel  string

	SessionTTL time.Duration
	ResetTTL   time.Duration

	UploadDir string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	TLSMode   string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.FromEmail != ""
}

func Load() (Config, error) {
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:       getenv("APP_ENV"),
		Addr:      getenv("APP_ADDR"),
		DBDSN:     getenv("APP_DB_DSN"),
		LogLevel:  getenv("APP_LOG_LEVEL"),
		UploadDir: getenv("APP_UPLOAD_DIR"),
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "data/uploads"
	}

	publicURLRaw := getenv("APP_PUBLIC_URL")
	if publicURLRaw != "" {
		parsed, err := url.Parse(publicURLRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_PUBLIC_URL: %w", err)
		}
		if !parsed.IsAbs() || parsed.Host == "" {
			return Config{}, errors.New("APP_PUBLIC_URL: must be an absolute URL")
		}
		switch parsed.Scheme {
		case "http", "https":
		default:
			return Config{}, errors.New("APP_PUBLIC_URL: scheme must be http or https")
		}
		cfg.PublicURL = parsed
	}

	sessionTTL, err := durationEnv(getenv, "APP_SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	resetTTL, err := durationEnv(getenv, "APP_RESET_TTL", time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.ResetTTL = resetTTL

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New("APP_ENV: must be one of dev, test, prod")
	}

	cfg.SMTP = SMTPConfig{
		Host:      getenv("APP_SMTP_HOST"),
		Username:  getenv("APP_SMTP_USERNAME"),
		Password:  getenv("APP_SMTP_PASSWORD"),
		FromEmail: strings.TrimSpace(getenv("APP_SMTP_FROM_EMAIL")),
		FromName:  strings.TrimSpace(getenv("APP_SMTP_FROM_NAME")),
		TLSMode:   getenv("APP_SMTP_TLS_MODE"),
	}
	if portRaw := getenv("APP_SMTP_PORT"); portRaw != "" {
		port, err := strconv.Atoi(portRaw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, errors.New("APP_SMTP_PORT: must be a valid port number")
		}
		cfg.SMTP.Port = port
	} else if cfg.SMTP.Host != "" {
		cfg.SMTP.Port = 587
	}

	if cfg.IsProd() {
		if cfg.PublicURL == nil {
			return Config{}, errors.New("APP_PUBLIC_URL: required in prod")
		}
		if cfg.DBDSN == "" {
			return Config{}, errors.New("APP_DB_DSN: required in prod")
		}
	}

	return cfg, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

func durationEnv(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be > 0", key)
	}
	return d, nil
}
