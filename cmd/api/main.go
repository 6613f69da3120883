package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // operator time zone on hosts without zoneinfo

	"github.com/gin-gonic/gin"

	"github.com/kirtansukhadiya/logified-prod/config"
	_ "github.com/kirtansukhadiya/logified-prod/docs" // Important for Swagger
	v1 "github.com/kirtansukhadiya/logified-prod/internal/delivery/http/v1"
	"github.com/kirtansukhadiya/logified-prod/internal/site"
	"github.com/kirtansukhadiya/logified-prod/internal/usecase"
	"github.com/kirtansukhadiya/logified-prod/pkg/email"
	"github.com/kirtansukhadiya/logified-prod/pkg/keepalive"
	"github.com/kirtansukhadiya/logified-prod/pkg/logger"
	"github.com/kirtansukhadiya/logified-prod/pkg/security"
	"github.com/kirtansukhadiya/logified-prod/pkg/validation"
	"github.com/kirtansukhadiya/logified-prod/web"
)

// @title           LOGIFIED SOLUTIONS Website API
// @version         1.0
// @description     Contact form and health endpoints of the LOGIFIED SOLUTIONS website.
// @host            localhost:3000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	appLog := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(appLog)
	gin.SetMode(cfg.GinMode)
	appLog.Info("Starting website server", "port", cfg.Port, "service", cfg.ServiceName)

	// Contact audit stream
	events, err := security.NewEventLogger(cfg.ServiceName, cfg.GinMode == gin.ReleaseMode)
	if err != nil {
		appLog.Warn("Contact audit log disabled", "error", err)
		events = security.Nop()
	}
	defer func() { _ = events.Sync() }()

	// 3. Setup Email Sender
	sender, err := email.NewSender(cfg)
	if err != nil {
		appLog.Error("Failed to create email sender", "error", err)
		os.Exit(1)
	}
	verifyMailRelay(appLog, events, cfg, sender)

	// 4. Setup UseCases
	validator, err := validation.NewContactValidator()
	if err != nil {
		appLog.Error("Failed to create validator", "error", err)
		os.Exit(1)
	}
	composer := usecase.NewContactComposer(cfg.SiteName, cfg.Location())
	dispatcher := usecase.NewMailDispatcher(
		sender,
		email.Recipient(cfg.SiteName, cfg.MailFrom),
		cfg.ContactEmailTo,
		cfg.MailSendTimeout,
	)
	contactUC := usecase.NewContactUsecase(validator, composer, dispatcher, appLog)
	healthUC := usecase.NewHealthUsecase(cfg.ServiceName)

	// 5. Load pages and templates
	s, err := site.New(cfg.SiteName, cfg.BaseURL, web.FS)
	if err != nil {
		appLog.Error("Failed to load site", "error", err)
		os.Exit(1)
	}

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Site:      s,
		Static:    web.Static(),
		Config:    cfg,
		Logger:    appLog,
		Events:    events,
	})

	// 7. Self-ping
	var pinger *keepalive.Pinger
	if cfg.KeepaliveURL != "" {
		pinger, err = keepalive.New(cfg.KeepaliveURL, cfg.KeepaliveSchedule, appLog)
		if err != nil {
			appLog.Error("Keepalive disabled", "error", err)
		} else {
			pinger.Start()
		}
	}

	// 8. Start Server
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("Server listening", "addr", srv.Addr, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pinger != nil {
		pinger.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}

	appLog.Info("Server exiting")
}

// verifyMailRelay checks the relay credentials once at startup. The server
// still starts on failure; submissions then fail with a 500 until fixed.
func verifyMailRelay(log *slog.Logger, events *security.EventLogger, cfg *config.Config, sender email.Sender) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sender.Verify(ctx); err != nil {
		log.Error("Email relay verification failed",
			"provider", cfg.MailProvider,
			"user", cfg.SMTPUsername,
			"secret_len", len(cfg.SMTPPassword)+len(cfg.ResendAPIKey)+len(cfg.PostmarkServerToken),
			"error", err,
		)
		events.LogRelayUnverified(ctx, cfg.MailProvider, err)
		return
	}
	log.Info("Email relay ready", "provider", cfg.MailProvider, "to", cfg.ContactEmailTo)
}
