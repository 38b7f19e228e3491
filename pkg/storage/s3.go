// Пакет storage загружает изображения проектов в S3-совместимое хранилище
// и выдаёт подписанные ссылки для прямой загрузки из браузера
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultBucket используется, если STORAGE_BUCKET не задан
const DefaultBucket = "project-images"

// Config описывает подключение к хранилищу
type Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// SignedUpload результат выдачи подписанной ссылки
type SignedUpload struct {
	Path      string
	Token     string
	SignedURL string
	PublicURL string
}

// S3Storage реализует загрузку объектов и подпись ссылок
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     Config
}

// NewS3Storage создаёт клиента с path-style адресацией
func NewS3Storage(cfg Config) (*S3Storage, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("storage endpoint is not configured")
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		BaseEndpoint: aws.String(strings.TrimRight(cfg.Endpoint, "/")),
		UsePathStyle: true,
	})
	return &S3Storage{client: client, presign: s3.NewPresignClient(client), cfg: cfg}, nil
}

// Upload сохраняет объект по пути path; существующий объект перезаписывается
func (s *S3Storage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

// SignUpload выдаёт подписанную PUT-ссылку на ttl
func (s *S3Storage) SignUpload(ctx context.Context, path string, ttl time.Duration) (*SignedUpload, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload url: %w", err)
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	return &SignedUpload{
		Path:      path,
		Token:     u.Query().Get("X-Amz-Signature"),
		SignedURL: req.URL,
		PublicURL: s.PublicURL(path),
	}, nil
}

// PublicURL возвращает публичный адрес объекта
func (s *S3Storage) PublicURL(path string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + path
	}
	return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + path
}
