package app

import (
	"context"
	"log"

	"blogHub/internal/config"
	"blogHub/internal/database"
	"blogHub/internal/repository"
	"blogHub/internal/service"
	"blogHub/internal/storage"
)

func App(ctx context.Context, cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to initialise MinIO: %v", err)
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
