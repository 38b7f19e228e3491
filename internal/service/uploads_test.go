package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"GalleryStudio/pkg/storage"
)

type mockSigner struct {
	path string
	ttl  time.Duration
}

func (m *mockSigner) SignUpload(ctx context.Context, path string, ttl time.Duration) (*storage.SignedUpload, error) {
	m.path, m.ttl = path, ttl
	return &storage.SignedUpload{Path: path, Token: "sig", SignedURL: "https://s3/" + path + "?sig", PublicURL: "https://cdn/" + path}, nil
}

func TestIssueUploadURL(t *testing.T) {
	signer := &mockSigner{}
	s := NewUploadService(signer, 10*time.Minute)
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }

	up, err := s.IssueUploadURL(context.Background(), "my photo (1).png")
	require.NoError(t, err)
	require.Equal(t, "projects/1700000000123-my_photo_1_.png", signer.path)
	require.Equal(t, 10*time.Minute, signer.ttl)
	require.Equal(t, "https://cdn/projects/1700000000123-my_photo_1_.png", up.PublicURL)

	_, err = s.IssueUploadURL(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "projects/1700000000123-file.png", signer.path)
}
