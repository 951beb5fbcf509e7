package app

import (
	"log"

	"github.com/LogM3/Poster/internal/cache"
	"github.com/LogM3/Poster/internal/config"
	"github.com/LogM3/Poster/internal/database"
	"github.com/LogM3/Poster/internal/repository"
	"github.com/LogM3/Poster/internal/service"
	"github.com/LogM3/Poster/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	pages := cache.NewPageCache(cfg.Cache.IndexSize, cfg.Cache.IndexTTL)

	services := service.NewService(repo, cfg, minioClient, pages)

	return db, services
}
