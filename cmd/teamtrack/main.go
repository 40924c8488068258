package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sagarvd01/teamtrack/internal/api"
	"github.com/sagarvd01/teamtrack/internal/config"
	"github.com/sagarvd01/teamtrack/internal/db"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logrus.WithError(err).Fatal("database init failed")
	}

	if err := db.SeedAdmin(database, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		logrus.WithError(err).Fatal("admin seed failed")
	}

	handler := api.NewHandler(database, api.Options{
		SecretKey:  cfg.JWTSecret,
		TokenTTL:   cfg.JWTExpire,
		Production: cfg.IsProduction(),
		Location:   location,
	})

	app := fiber.New(fiber.Config{
		AppName:               "TeamTrack",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   location.String(),
		"env":  cfg.Environment,
	}).Info("TeamTrack listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logrus.Warnf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
