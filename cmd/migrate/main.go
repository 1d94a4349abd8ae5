package main

import (
	"log"

	"prep-tool-be/internal/config"
	"prep-tool-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Migrating %s database...", cfg.Database.Driver)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
