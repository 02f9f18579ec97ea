package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/univents/campus-events/internal/calendar"
	"github.com/univents/campus-events/internal/config"
	"github.com/univents/campus-events/internal/handler"
	"github.com/univents/campus-events/internal/payment"
	"github.com/univents/campus-events/internal/queue"
	"github.com/univents/campus-events/internal/registration"
	"github.com/univents/campus-events/internal/repository"
	"github.com/univents/campus-events/internal/router"
	"github.com/univents/campus-events/internal/seed"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logrus.Info("loaded .env file")
	}

	cfg := config.Load()
	if cfg.Env == "prod" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.WithField("env", cfg.Env).Info("starting campus-events server")

	// In-memory stores seeded with the demo campus data.
	users := repository.NewUserRepo()
	tokens := repository.NewTokenRepo()
	catalog := repository.NewEventCatalog()
	ledger := repository.NewTicketLedger()
	if err := seed.Load(seed.Stores{Users: users, Catalog: catalog, Ledger: ledger}, cfg.BcryptCost); err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}

	charger := payment.NewSimulator(cfg.PaymentDelay)
	svc := registration.NewService(catalog, ledger, charger, queue.NewPublisher())
	idx := calendar.NewIndex(catalog)

	// Redis is optional: without it the cache and rate limiter become
	// no-ops and every request goes straight to the handlers.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	authH := handler.NewAuthHandler(cfg, users, tokens)
	eventH := handler.NewEventHandler(catalog)
	regH := handler.NewRegistrationHandler(svc)
	calH := handler.NewCalendarHandler(idx)

	router.RegisterPublic(e, eventH, calH, cacheCfg, rdb)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStudent(e, regH, cfg.JWTSecret, rlCfg, rdb)
	router.RegisterOrganizer(e, eventH, cfg.JWTSecret)

	if cfg.ConsumerOn {
		go queue.StartRegistrationConsumer()
	}

	if err := e.Start(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
