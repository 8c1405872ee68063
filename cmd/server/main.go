// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonpay/internal/config"
	"salonpay/internal/handlers"
	"salonpay/internal/middleware"
	"salonpay/internal/repositories"
	"salonpay/internal/repositories/cache"
	"salonpay/internal/routes"
	"salonpay/internal/services/fees"
	"salonpay/internal/services/payment"
	"salonpay/internal/services/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func newLogger() *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if config.IsProduction() {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return l
}

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Initializes database and cache connections
// - Sets up dependency injection
// - Configures routes
// - Starts the HTTP server
func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := newLogger()
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("connected to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.SettingsCacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Warn("failed to close redis connection", zap.Error(err))
		}
	}()
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		// Settings reads fall back to the database while redis is down.
		log.Warn("redis unavailable at startup", zap.Error(err))
	}

	calculator := fees.NewCalculator(nil,
		fees.WithDefaultPlatformFee(cfg.DefaultPlatformFee),
		fees.WithCurrencySymbol(cfg.CurrencySymbol),
	)

	gateway, err := payment.NewStripeGateway(payment.StripeGatewayConfig{APIKey: cfg.StripeSecretKey})
	if err != nil {
		log.Fatal("failed to initialize stripe gateway", zap.Error(err))
	}

	settingsService := settings.NewService(repositories.NewPaymentSettingsRepository(db), cacheService, log)
	paymentService := payment.NewService(
		settingsService,
		repositories.NewBookingPaymentRepository(db),
		gateway,
		calculator,
		payment.Config{
			Currency:           cfg.Currency,
			CheckoutSuccessURL: cfg.CheckoutSuccessURL,
			CheckoutCancelURL:  cfg.CheckoutCancelURL,
		},
		log,
	)

	app := fiber.New(fiber.Config{AppName: "salonpay"})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Charge creation talks to Stripe; keep clients from hammering it.
	app.Use("/api/payments", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Health: handlers.NewHealthHandler(cacheService.GetStats,
			handlers.Dependency{Name: "database", Check: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			handlers.Dependency{Name: "redis", Check: cacheService.HealthCheck},
		),
		Fees:     handlers.NewFeeHandler(calculator, paymentService, log),
		Settings: handlers.NewSettingsHandler(settingsService, log),
		Payments: handlers.NewPaymentHandler(paymentService, log),
		Auth:     middleware.NewAuthMiddleware(cfg.JWTSecret, log),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warn("shutdown error", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
