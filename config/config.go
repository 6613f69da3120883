package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Mail providers supported by pkg/email.
const (
	MailProviderSMTP     = "smtp"
	MailProviderResend   = "resend"
	MailProviderPostmark = "postmark"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	BaseURL     string `env:"BASE_URL" envDefault:"https://logified.in"`
	SiteName    string `env:"SITE_NAME" envDefault:"LOGIFIED SOLUTIONS"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"LOGIFIED SOLUTIONS Unified Server"`
	// Operator time zone, used for notification timestamps and the HTML sitemap
	SiteTimezone string `env:"SITE_TIMEZONE" envDefault:"Asia/Kolkata"`
	PublicDir    string `env:"PUBLIC_DIR" envDefault:"public"`
	GinMode      string `env:"GIN_MODE" envDefault:"debug"`
	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	// Mail relay
	MailProvider    string        `env:"MAIL_PROVIDER" envDefault:"smtp"`
	MailSendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"30s"`
	MailFrom        string        `env:"MAIL_FROM"`      // Defaults to EMAIL_USER
	ContactEmailTo  string        `env:"CONTACT_EMAIL_TO"` // Defaults to EMAIL_USER
	// SMTP (Gmail by default)
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"EMAIL_USER"`
	SMTPPassword string `env:"EMAIL_PASS"`
	// API relays
	ResendAPIKey         string `env:"RESEND_API_KEY"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// Self-ping
	KeepaliveURL      string `env:"KEEPALIVE_URL"`
	KeepaliveSchedule string `env:"KEEPALIVE_SCHEDULE" envDefault:"@every 14m"`
}

func LoadConfig() (*Config, error) {
	// .env is optional; production reads the real environment
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.MailProvider = strings.ToLower(strings.TrimSpace(cfg.MailProvider))
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}
	if cfg.ContactEmailTo == "" {
		cfg.ContactEmailTo = cfg.SMTPUsername
	}

	switch cfg.MailProvider {
	case MailProviderSMTP, MailProviderResend, MailProviderPostmark:
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.MailProvider)
	}

	if _, err := time.LoadLocation(cfg.SiteTimezone); err != nil {
		return nil, fmt.Errorf("invalid SITE_TIMEZONE %q: %w", cfg.SiteTimezone, err)
	}

	if cfg.ContactEmailTo == "" {
		log.Println("WARNING: CONTACT_EMAIL_TO and EMAIL_USER are empty. Contact submissions will fail at send time.")
	}

	return &cfg, nil
}

// Location returns the operator time zone. LoadConfig has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SiteTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
