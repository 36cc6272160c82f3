package main

import (
	"context"
	"errors"
	"log"
	"os"

	"xyzhotel/internal/catalog"
	"xyzhotel/internal/config"
	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/money"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/services/admin"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/services/stock"
)

func main() {
	config.LoadEnv()

	username := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if username == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_USERNAME, ADMIN_EMAIL, and ADMIN_PASSWORD must be set in environment")
	}

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
		}
	}()

	store := repositories.NewStore(db)
	ledgerService := ledger.NewService(store, money.MustNewConverter(money.DefaultRates()), ledger.Config{}, nil)
	adminService := admin.NewService(store, stock.NewService(store, catalog.Default(), stock.Config{}), ledgerService, nil, admin.Config{
		JWTSecret: config.GetEnv("JWT_SECRET", ""),
	})

	created, err := adminService.CreateAdministrator(context.Background(), admin.CreateAdministratorInput{
		Username: username,
		Email:    adminEmail,
		Password: adminPassword,
	})
	if errors.Is(err, apperrors.ErrAdministratorExists) {
		log.Println("Administrator already exists")
		return
	}
	if err != nil {
		log.Fatalf("Failed to create administrator: %v", err)
	}

	log.Printf("✅ Administrator %s created successfully!", created.Username)
}
