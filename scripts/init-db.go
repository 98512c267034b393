package main

import (
	"fmt"
	"log"

	"cardapio/internal/config"
	"cardapio/internal/database"
	"cardapio/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Product{},
		&models.Additional{},
		&models.Customer{},
		&models.Order{},
		&models.Settings{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Recreating tables...")
	err = db.AutoMigrate(
		&models.Product{},
		&models.Additional{},
		&models.Customer{},
		&models.Order{},
		&models.Settings{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Seeding sample catalog and store settings...")
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Database initialized successfully")
}
