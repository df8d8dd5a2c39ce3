package main

import (
	"log"

	"github.com/clidwin/visualimprints-go/internal/api"
	"github.com/clidwin/visualimprints-go/internal/config"
	"github.com/clidwin/visualimprints-go/internal/database"
)

func main() {
	cfg := config.Load()

	store, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer store.Close()

	db, err := store.DB()
	if err != nil {
		log.Fatal("Failed to get database handle:", err)
	}
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	router := api.SetupRouter(cfg, store)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
