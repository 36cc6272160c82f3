package config

import (
	"fmt"
	"strings"
	"time"

	"xyzhotel/internal/catalog"
	"xyzhotel/internal/money"

	"github.com/shopspring/decimal"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// HotelConfig is the runtime configuration of the reservation service.
type HotelConfig struct {
	Port          string
	StorageDriver string

	FXRates   money.RateTable
	RoomStock map[catalog.Category]int

	// HoldTTL bounds how long a booking may stay PENDING. Zero disables
	// expiry.
	HoldTTL       time.Duration
	SweepInterval time.Duration
	MaxNights     int

	CacheEnabled     bool
	OverviewCacheTTL time.Duration
	AMQPURL          string

	JWTSecret     string
	AdminTokenTTL time.Duration
}

// LoadHotelConfig reads the service configuration from the environment.
func LoadHotelConfig() (*HotelConfig, error) {
	rates, err := ParseRates(GetEnv("FX_RATES", ""))
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(GetEnv("STORAGE_DRIVER", StoragePostgres))
	if driver != StoragePostgres && driver != StorageMemory {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}

	stock := make(map[catalog.Category]int)
	for _, category := range []catalog.Category{catalog.Standard, catalog.Superior, catalog.Suite} {
		if n := GetIntEnv("ROOM_STOCK_"+string(category), -1); n >= 0 {
			stock[category] = n
		}
	}

	cfg := &HotelConfig{
		Port:             GetEnv("PORT", "8080"),
		StorageDriver:    driver,
		FXRates:          rates,
		RoomStock:        stock,
		HoldTTL:          GetDurationEnv("BOOKING_HOLD_TTL", 0),
		SweepInterval:    GetDurationEnv("BOOKING_SWEEP_INTERVAL", time.Minute),
		MaxNights:        GetIntEnv("BOOKING_MAX_NIGHTS", 365),
		CacheEnabled:     GetBoolEnv("CACHE_ENABLED", false),
		OverviewCacheTTL: GetDurationEnv("OVERVIEW_CACHE_TTL", 30*time.Second),
		AMQPURL:          GetEnv("RABBITMQ_URL", ""),
		JWTSecret:        GetEnv("JWT_SECRET", ""),
		AdminTokenTTL:    GetDurationEnv("ADMIN_TOKEN_TTL", 12*time.Hour),
	}
	if cfg.HoldTTL < 0 {
		return nil, fmt.Errorf("BOOKING_HOLD_TTL must not be negative")
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("BOOKING_SWEEP_INTERVAL must be positive")
	}
	if IsProduction() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	return cfg, nil
}

// ParseRates overlays "USD=0.92,GBP=1.17" style overrides on the default
// rate table.
func ParseRates(raw string) (money.RateTable, error) {
	rates := money.DefaultRates()
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid FX_RATES entry %q", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive", code)
		}
		rates[money.NormalizeCode(code)] = rate
	}
	return rates, nil
}
