package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/flare/internal/api"
	"github.com/terraincognita07/flare/internal/config"
	"github.com/terraincognita07/flare/internal/logging"
	"github.com/terraincognita07/flare/internal/scheduler"
	"github.com/terraincognita07/flare/internal/services"
)

const shutdownTimeout = 10 * time.Second

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	time.Local = cfg.Location

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if cfg.GeneratedSecretKey {
		log.Warn("SECRET_KEY not set; using a random key, sessions end on restart")
	}

	tracker, closeDB, err := openTracker(cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed")
		return err
	}
	defer closeDB()

	handler, err := api.NewHandler(api.HandlerConfig{
		Tracker:      tracker,
		Auth:         services.NewAuthService(cfg.PassphraseHash),
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		TrendDays:    cfg.TrendDays,
		Logger:       log,
	})
	if err != nil {
		log.WithError(err).Error("handler init failed")
		return err
	}

	accessLog := log.WriterLevel(logrus.InfoLevel)
	defer accessLog.Close()
	app := newServerApp(handler, cfg.CookieSecure, accessLog)

	var backups *scheduler.BackupScheduler
	if cfg.BackupsEnabled() {
		backups = scheduler.NewBackupScheduler(tracker, cfg.BackupDir, cfg.BackupSchedule, cfg.BackupKeep, cfg.Location, log)
		if err := backups.Start(); err != nil {
			log.WithError(err).Error("backup scheduler init failed")
			return err
		}
		defer backups.Stop()
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":    cfg.ListenAddress(),
		"db":      cfg.DBPath,
		"tz":      cfg.Location.String(),
		"locked":  cfg.PassphraseHash != "",
		"backups": cfg.BackupsEnabled(),
	}).Info("flare listening")
	if err := app.Listen(cfg.ListenAddress()); err != nil {
		log.WithError(err).Error("server exited")
		return err
	}
	return nil
}

func newServerApp(handler *api.Handler, cookieSecure bool, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Flare",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: accessLog}))
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     api.CSRFCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid csrf token"})
		},
	}
}
