package app

import (
	"context"
	"log"

	"socialnet/internal/config"
	"socialnet/internal/database"
	"socialnet/internal/repository"
	"socialnet/internal/service"
	"socialnet/internal/storage"
)

// App connects the database and the media store and builds the services on top.
func App(ctx context.Context, cfg *config.Config) (*database.DB, *storage.MinIOClient, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	media, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		db.CloseDB()
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, media)

	return db, media, services
}
