// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"xyzhotel/internal/catalog"
	"xyzhotel/internal/handlers"
	"xyzhotel/internal/middleware"
	"xyzhotel/internal/services/admin"
	"xyzhotel/internal/services/booking"
	"xyzhotel/internal/services/customer"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/services/stock"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the root and health endpoints.
const Version = "1.0.0"

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Catalog   *catalog.Catalog
	Customers customer.Service
	Ledger    ledger.Service
	Stock     stock.Service
	Bookings  booking.Service
	Admin     admin.Service

	// HealthChecks are reported by GET /health, keyed by service name.
	HealthChecks map[string]handlers.HealthCheck
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(Version, deps.HealthChecks)
	roomHandler := handlers.NewRoomHandler(deps.Catalog, deps.Stock)
	customerHandler := handlers.NewCustomerHandler(deps.Customers)
	walletHandler := handlers.NewWalletHandler(deps.Ledger)
	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	adminHandler := handlers.NewAdminHandler(deps.Admin)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the XYZ Hotel API",
			"version": Version,
			"docs":    "/api",
		})
	})
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	setupRoomRoutes(api, roomHandler)
	setupCustomerRoutes(api, customerHandler, walletHandler, bookingHandler)
	setupBookingRoutes(api, bookingHandler)

	// Login stays public; it is registered before the guarded group.
	api.Post("/admin/login", adminHandler.Login)

	authMiddleware := middleware.NewAuthMiddleware(deps.Admin)
	setupAdminRoutes(api.Group("/admin", authMiddleware.Handler), adminHandler, customerHandler)
}

func setupRoomRoutes(router fiber.Router, h *handlers.RoomHandler) {
	rooms := router.Group("/rooms")
	rooms.Get("/types", h.ListRoomTypes)
	rooms.Get("/types/:category", h.GetRoomType)
	rooms.Get("/types/:category/availability", h.GetAvailability)
}

func setupCustomerRoutes(router fiber.Router, h *handlers.CustomerHandler, walletHandler *handlers.WalletHandler, bookingHandler *handlers.BookingHandler) {
	customers := router.Group("/customers")
	customers.Post("/", h.RegisterCustomer)
	customers.Get("/:id", h.GetCustomer)

	// Wallet
	customers.Get("/:id/wallet", walletHandler.GetBalance)
	customers.Post("/:id/wallet/credit", walletHandler.CreditWallet)
	customers.Get("/:id/wallet/transactions", walletHandler.GetTransactions)

	customers.Get("/:id/bookings", bookingHandler.GetCustomerBookings)
}

func setupBookingRoutes(router fiber.Router, h *handlers.BookingHandler) {
	bookings := router.Group("/bookings")
	bookings.Get("/quote", h.QuoteBooking)
	bookings.Post("/", h.CreateBooking)
	bookings.Get("/:id", h.GetBooking)
	bookings.Post("/:id/pay-deposit", h.PayDeposit)
	bookings.Post("/:id/pay-balance", h.PayBalance)
	bookings.Post("/:id/cancel", h.CancelBooking)
}

func setupAdminRoutes(router fiber.Router, h *handlers.AdminHandler, customerHandler *handlers.CustomerHandler) {
	router.Get("/me", h.Me)
	router.Get("/overview", h.GetOverview)

	router.Get("/customers", customerHandler.ListCustomers)
	router.Post("/customers/:id/suspend", customerHandler.SuspendCustomer)
	router.Post("/customers/:id/reactivate", customerHandler.ReactivateCustomer)
	router.Get("/customers/:id/reconcile", h.ReconcileWallet)
}
