// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xyzhotel/internal/catalog"
	"xyzhotel/internal/config"
	"xyzhotel/internal/events"
	"xyzhotel/internal/handlers"
	"xyzhotel/internal/money"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/repositories/cache"
	"xyzhotel/internal/repositories/memory"
	"xyzhotel/internal/routes"
	"xyzhotel/internal/services/admin"
	"xyzhotel/internal/services/booking"
	"xyzhotel/internal/services/customer"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/services/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const devJWTSecret = "xyzhotel-dev-secret"

func main() {
	// Load environment variables
	config.LoadEnv()

	cfg, err := config.LoadHotelConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	checks := map[string]handlers.HealthCheck{}

	// Storage
	var store repositories.Store
	var db *gorm.DB
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Println("⚠️ Using in-memory storage, data is lost on restart")
		store = memory.NewStore()
	default:
		db, err = repositories.InitDB()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database instance: %v", err)
		}
		if err := sqlDB.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		checks["database"] = sqlDB.PingContext

		// Add a periodic check of connection pool stats
		go func() {
			ticker := time.NewTicker(1 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				stats := sqlDB.Stats()
				log.Printf("DB Stats: Open=%d, Idle=%d, InUse=%d, WaitCount=%d, WaitDuration=%s",
					stats.OpenConnections, stats.Idle, stats.InUse, stats.WaitCount, stats.WaitDuration)
			}
		}()
		store = repositories.NewStore(db)
	}

	// Cache for the admin overview
	var overviewCache repositories.CacheRepository
	var cacheService *cache.CacheService
	if cfg.CacheEnabled {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		cacheService = cache.NewCacheService(client, cfg.OverviewCacheTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := cacheService.Ping(ctx)
		cancel()
		if err != nil {
			log.Printf("⚠️ Redis unavailable, overview cache disabled: %v", err)
			_ = client.Close()
			cacheService = nil
		} else {
			log.Println("✅ Redis connected")
			overviewCache = cacheService
			checks["redis"] = cacheService.Ping
		}
	}

	// Booking events
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = events.NewRabbitMQPublisher(cfg.AMQPURL)
		log.Println("✅ Booking events go to RabbitMQ")
	}

	// Domain
	converter, err := money.NewConverter(cfg.FXRates)
	if err != nil {
		log.Fatalf("Invalid FX rates: %v", err)
	}
	cat, err := catalog.New(catalog.DefaultRoomTypes(), cfg.RoomStock)
	if err != nil {
		log.Fatalf("Invalid room catalog: %v", err)
	}

	ledgerService := ledger.NewService(store, converter, ledger.Config{}, nil)
	stockService := stock.NewService(store, cat, stock.Config{MaxNights: cfg.MaxNights})
	bookingService := booking.NewService(store, cat, stockService, ledgerService, publisher, overviewCache, booking.Config{
		HoldTTL:   cfg.HoldTTL,
		MaxNights: cfg.MaxNights,
	})
	adminService := admin.NewService(store, stockService, ledgerService, overviewCache, admin.Config{
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         cfg.AdminTokenTTL,
		OverviewCacheTTL: cfg.OverviewCacheTTL,
	})

	// Create Fiber app
	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/admin/login", limiter.New(limiter.Config{
		Max:        5,
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

	// Routes
	routes.SetupRoutes(app, routes.Dependencies{
		Catalog:      cat,
		Customers:    customer.NewService(store),
		Ledger:       ledgerService,
		Stock:        stockService,
		Bookings:     bookingService,
		Admin:        adminService,
		HealthChecks: checks,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HoldTTL > 0 {
		log.Printf("Unpaid holds expire after %s, sweeping every %s", cfg.HoldTTL, cfg.SweepInterval)
		go booking.RunSweeper(ctx, bookingService, cfg.SweepInterval)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("❌ Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("⚠️ Failed to shut down cleanly: %v", err)
	}

	// Close PostgreSQL connection
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close database connection: %v", err)
			}
		}
	}
	if cacheService != nil {
		if err := cacheService.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis connection: %v", err)
		}
	}
}
