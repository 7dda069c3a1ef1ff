package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/creatorkit/server/internal/shared/config"
	"github.com/creatorkit/server/internal/shared/database"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: .env file could not be loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	version, err := database.Migrate(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Database schema at version %d", version)
}
