package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cloudpaste/cloudpaste/internal/config"
	"github.com/cloudpaste/cloudpaste/internal/database"
	"github.com/cloudpaste/cloudpaste/internal/handlers"
	"github.com/cloudpaste/cloudpaste/internal/services"
	"github.com/cloudpaste/cloudpaste/internal/storage"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system environment variables")
	}

	cfg := config.New()
	if cfg.Verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD is not set; admin endpoints are disabled")
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close(db)

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage backend")
	}

	pastes := services.NewPasteService(db, log)
	files := services.NewFileService(db, blobs, cfg.MaxFileSize, cfg.TotalStorage, log)
	admin := services.NewAdminService(db, pastes, files, cfg.BaseURL, cfg.AdminUsername, cfg.AdminPassword, log)

	sweeper := services.NewSweeper(db, pastes, files, cfg.CleanupInterval, log)
	sweeper.Start(context.Background())

	router := handlers.NewRouter(log, pastes, files, admin)

	log.Info().
		Str("port", cfg.Port).
		Str("baseURL", cfg.BaseURL).
		Str("storage", cfg.StorageBackend).
		Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
	}
	return storage.NewLocalStore(cfg.DataDir)
}
