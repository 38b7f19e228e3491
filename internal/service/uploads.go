package service

import (
	"context"
	"time"

	"GalleryStudio/internal/normalize"
	"GalleryStudio/pkg/storage"
)

// Signer выдаёт подписанные ссылки на загрузку
type Signer interface {
	SignUpload(ctx context.Context, path string, ttl time.Duration) (*storage.SignedUpload, error)
}

// UploadService выдаёт ссылки для прямой загрузки файлов из браузера
type UploadService struct {
	signer Signer
	ttl    time.Duration
	now    func() time.Time
}

// NewUploadService создаёт сервис; ttl задаёт срок действия ссылки
func NewUploadService(s Signer, ttl time.Duration) *UploadService {
	return &UploadService{signer: s, ttl: ttl, now: time.Now}
}

// IssueUploadURL строит путь projects/<ms>-<имя> и подписывает его
func (s *UploadService) IssueUploadURL(ctx context.Context, filename string) (*storage.SignedUpload, error) {
	path := normalize.ObjectPath(s.now(), normalize.SafeFileName(filename, "file.png"))
	return s.signer.SignUpload(ctx, path, s.ttl)
}
