// One-shot catalog sync: mirrors the media library and quiz question seed
// into the database, then exits. The server runs the same sync nightly.
package main

import (
	"log"

	"singlang/internal/config"
	"singlang/internal/database"
	"singlang/internal/repository"
	"singlang/internal/sync"
)

func main() {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	syncService, err := sync.NewService(
		repository.NewCatalogRepository(db),
		repository.NewQuizRepository(db),
		cfg.MediaRoot,
		cfg.MediaBaseURL,
		cfg.LessonConfigPath,
		cfg.QuestionSeedPath,
	)
	if err != nil {
		log.Fatalf("Failed to initialize sync service: %v", err)
	}

	if err := syncService.Run(); err != nil {
		log.Fatalf("Catalog sync failed: %v", err)
	}
	log.Println("Catalog sync completed")
}
