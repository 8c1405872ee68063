// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"salonpay/internal/handlers"
	"salonpay/internal/middleware"
	"salonpay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Health   *handlers.HealthHandler
	Fees     *handlers.FeeHandler
	Settings *handlers.SettingsHandler
	Payments *handlers.PaymentHandler
	Auth     *middleware.AuthMiddleware
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to SalonPay API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public fee table endpoints
	feesGroup := api.Group("/fees")
	feesGroup.Get("/methods", h.Fees.ListMethods)
	feesGroup.Get("/methods/:method", h.Fees.GetMethod)
	feesGroup.Post("/net", h.Fees.NetAmount)

	// Protected routes with auth middleware
	protected := api.Group("", h.Auth.Handler)

	protected.Post("/fees/quote", middleware.HasPermission(models.PermissionFeesRead), h.Fees.Quote)

	setupSettingsRoutes(protected, h.Settings)
	setupPaymentRoutes(protected, h.Payments)

	protected.Get("/admin/cache-stats", middleware.HasPermission(models.PermissionSettingsWrite), h.Health.CacheStats)
}

func setupSettingsRoutes(router fiber.Router, h *handlers.SettingsHandler) {
	router.Get("/payment-settings", middleware.HasPermission(models.PermissionSettingsRead), h.GetSettings)
	router.Put("/payment-settings", middleware.HasPermission(models.PermissionSettingsWrite), h.UpdateSettings)
}

func setupPaymentRoutes(router fiber.Router, h *handlers.PaymentHandler) {
	payments := router.Group("/payments")
	payments.Post("/intent", middleware.HasPermission(models.PermissionPaymentWrite), h.CreateIntent)
	payments.Post("/checkout", middleware.HasPermission(models.PermissionPaymentWrite), h.CreateCheckout)
	payments.Get("/:id", middleware.HasPermission(models.PermissionPaymentRead), h.GetPayment)

	router.Get("/bookings/:bookingId/payments", middleware.HasPermission(models.PermissionPaymentRead), h.ListBookingPayments)
}
