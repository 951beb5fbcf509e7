package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/LogM3/Poster/internal/config"
)

// Storage keeps post images. Object names are stored on the post, URLs are
// derived on read.
type Storage interface {
	UploadImage(ctx context.Context, fileName, extension, contentType string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	GetImageURL(ctx context.Context, objectName string) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", cfg.MinIO.BucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Printf("Создан бакет MinIO: %s", cfg.MinIO.BucketName)
	}

	return &MinIOClient{
		client: client,
		bucket: cfg.MinIO.BucketName,
		expiry: cfg.MinIO.URLExpiry,
	}, nil
}

// ObjectName builds posts/<uuid><ext>. The extension comes from the sniffed
// content, never from the client's file name.
func ObjectName(extension, contentType string) string {
	fileExt := strings.ToLower(extension)
	if fileExt != "" && !strings.HasPrefix(fileExt, ".") {
		fileExt = "." + fileExt
	}
	if fileExt == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			fileExt = exts[0]
		} else {
			fileExt = ".jpg"
		}
	}
	return "posts/" + uuid.New().String() + fileExt
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName, extension, contentType string, file io.Reader, size int64) (string, error) {
	objectName := ObjectName(extension, contentType)

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(objectName))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

func (m *MinIOClient) GetImageURL(ctx context.Context, objectName string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("ошибка получения ссылки на изображение: %w", err)
	}
	return u.String(), nil
}
