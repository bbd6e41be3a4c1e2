package photostore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config — настройки объектного хранилища фотографий.
type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLTTL    time.Duration
}

// Store — хранилище фотографий объявлений поверх minio.
// Выдаёт подписанные ссылки, сами байты через сервис не проходят.
type Store struct {
	client *minio.Client
	cfg    Config
	log    *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Store, error) {
	const op = "photostore.New"

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{client: client, cfg: cfg, log: log}, nil
}

// EnsureBucket создаёт бакет, если его ещё нет.
func (s *Store) EnsureBucket(ctx context.Context) error {
	const op = "photostore.Store.EnsureBucket"

	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("bucket created", slog.String("bucket", s.cfg.Bucket))
	return nil
}

// UploadURL — подписанная ссылка на загрузку фотографии объявления.
func (s *Store) UploadURL(ctx context.Context, listingID, filename string) (string, error) {
	const op = "photostore.Store.UploadURL"

	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, objectKey(listingID, filename), s.cfg.URLTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return u.String(), nil
}

// DownloadURL — подписанная ссылка на чтение фотографии.
func (s *Store) DownloadURL(ctx context.Context, listingID, filename string) (string, error) {
	const op = "photostore.Store.DownloadURL"

	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectKey(listingID, filename), s.cfg.URLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return u.String(), nil
}

func objectKey(listingID, filename string) string {
	return path.Join("listings", listingID, path.Base(filename))
}
