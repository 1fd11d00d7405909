package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parkhub/internal/config"
	"parkhub/internal/db"
	"parkhub/internal/model"
	"parkhub/internal/repository"
)

const adminEmail = "admin@parkhub.local"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Driver{},
		&model.ParkingSpace{},
		&model.Vehicle{},
		&model.Booking{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	driverRepo := repository.NewDriverRepository(gormDB)
	spaceRepo := repository.NewSpaceRepository(gormDB)

	if err := seedAdmin(ctx, driverRepo); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, err := seedSpaces(ctx, spaceRepo)
	if err != nil {
		log.Fatalf("Failed to seed parking spaces: %v", err)
	}

	log.Printf("Seed complete: %d parking spaces created", created)
}

func seedAdmin(ctx context.Context, repo repository.DriverRepository) error {
	if _, err := repo.FindByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin account already present, skipping")
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return err
	}
	admin := &model.Driver{
		FullName:     "ParkHub Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin account %s", adminEmail)
	return nil
}

func seedSpaces(ctx context.Context, repo repository.SpaceRepository) (int, error) {
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		log.Printf("Parking spaces already present (%d), skipping", existing)
		return 0, nil
	}

	spaces := []model.ParkingSpace{
		{
			Name:         "Central Plaza Garage",
			Address:      "12 Moi Avenue, Nairobi",
			Latitude:     -1.2833,
			Longitude:    36.8167,
			TotalSpots:   120,
			PricePerHour: decimal.NewFromInt(150),
			Features:     "covered,security,ev_charging",
			Rating:       4.5,
		},
		{
			Name:         "Riverside Open Lot",
			Address:      "88 Riverside Drive, Nairobi",
			Latitude:     -1.2690,
			Longitude:    36.8050,
			TotalSpots:   45,
			PricePerHour: decimal.NewFromInt(100),
			Features:     "open_air,24h",
			Rating:       4.1,
		},
		{
			Name:         "Westlands Mall Parking",
			Address:      "5 Mpaka Road, Westlands",
			Latitude:     -1.2647,
			Longitude:    36.8028,
			TotalSpots:   300,
			PricePerHour: decimal.NewFromInt(200),
			Features:     "covered,valet,car_wash",
			Rating:       4.8,
		},
	}

	created := 0
	for i := range spaces {
		spaces[i].AvailableSpots = spaces[i].TotalSpots
		if err := repo.Create(ctx, &spaces[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
