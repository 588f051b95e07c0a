package main

import (
	"log"

	"github.com/joho/godotenv"

	"usagl/internal/config"
	"usagl/internal/database"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := database.EnsureAdmin(db, "admin@usagl.com", "admin123"); err != nil {
		log.Fatal("Admin seed failed:", err)
	}
	log.Println("Admin ready: admin@usagl.com / admin123")

	if err := database.SeedDemo(db); err != nil {
		log.Fatal("Seed failed:", err)
	}

	log.Println("Seed completed")
}
