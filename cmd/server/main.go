package main

import (
	"log"
	"net/http"
	"os"

	_ "parkhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"parkhub/internal/auth"
	"parkhub/internal/cache"
	"parkhub/internal/config"
	"parkhub/internal/db"
	"parkhub/internal/handler"
	"parkhub/internal/model"
	"parkhub/internal/repository"
	"parkhub/internal/router"
	"parkhub/internal/service"
)

// @title ParkHub API
// @version 1.0
// @description Parking reservation API with spaces, bookings, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Booking{},
			&model.Vehicle{},
			&model.ParkingSpace{},
			&model.Driver{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Driver{},
		&model.ParkingSpace{},
		&model.Vehicle{},
		&model.Booking{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	driverRepo := repository.NewDriverRepository(gormDB)
	spaceRepo := repository.NewSpaceRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(driverRepo, jwtService, tokenStore)
	spaceService := service.NewSpaceService(spaceRepo, cacheClient)
	bookingService := service.NewBookingService(bookingRepo, spaceRepo, cacheClient)
	vehicleService := service.NewVehicleService(vehicleRepo)
	statsService := service.NewStatsService(driverRepo, bookingRepo, spaceRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	spaceHandler := handler.NewSpaceHandler(spaceService, bookingService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	adminHandler := handler.NewAdminHandler(spaceService, statsService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		bookingHandler,
		spaceHandler,
		vehicleHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
