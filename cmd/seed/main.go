// Command main seeds the memory map database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"memorymap/internal/config"
	"memorymap/internal/database"
	"memorymap/internal/models"
	"memorymap/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	shouldClean := flag.Bool("clean", false, "Delete existing rows before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		for _, table := range []string{"memories", "users", "accounts"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatalf("Cleanup of %s failed: %v", table, err)
			}
		}
	}

	ctx := context.Background()
	accounts := repository.NewAccountRepository(db)
	users := repository.NewUserRepository(db)
	memories := repository.NewMemoryRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Password hashing failed: %v", err)
	}

	account := &models.Account{Email: "demo@memorymap.dev", Password: string(hashed)}
	if err := accounts.Create(ctx, account); err != nil {
		log.Fatalf("Account seeding failed: %v", err)
	}
	if err := users.Create(ctx, &models.User{
		ID:       account.ID,
		Email:    account.Email,
		Username: "demo",
	}); err != nil {
		log.Fatalf("Profile seeding failed: %v", err)
	}

	demo := []models.Memory{
		{
			Title:       "Boğaz'da Gün Batımı",
			Description: "Akşam yürüyüşünde çekilen manzara",
			Latitude:    41.0082,
			Longitude:   28.9784,
			Tags:        models.TagList{"aile", "tatil"},
			Date:        "2024-06-01",
			UserID:      account.ID,
		},
		{
			Title:       "Kapadokya Balonları",
			Description: "Gün doğumunda balon turu",
			Latitude:    38.6431,
			Longitude:   34.8289,
			Tags:        models.TagList{"tatil"},
			Date:        "2024-09-14",
			UserID:      account.ID,
		},
		{
			Title:       "İzmir Kordon",
			Description: "Deniz kenarında kahve",
			Latitude:    38.4362,
			Longitude:   27.1428,
			Tags:        models.TagList{"arkadaşlar"},
			Date:        "2025-03-22",
			UserID:      account.ID,
		},
	}
	for i := range demo {
		if err := memories.Create(ctx, &demo[i]); err != nil {
			log.Fatalf("Memory seeding failed: %v", err)
		}
	}

	log.Printf("Seeded 1 account, 1 profile, %d memories", len(demo))
}
