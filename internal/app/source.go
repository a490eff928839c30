package app

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/flashcards-client/internal/config"
	storage "github.com/dtroode/flashcards-client/internal/storage/minio"
)

// OpenDocumentSource connects to the object storage documents can be uploaded from.
func OpenDocumentSource(ctx context.Context, cfg config.Storage) (*storage.Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	client, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document source: %w", err)
	}
	return client, nil
}
