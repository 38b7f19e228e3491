package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STORAGE_BUCKET", "CAPTCHA_MIN_SCORE", "REDIS_TTL", "ADMIN_API_KEY", "RESEND_API_KEY"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "project-images", cfg.StorageBucket)
	require.Equal(t, 0.5, cfg.CaptchaMinScore)
	require.Equal(t, time.Minute, cfg.RedisTTL)
	require.Empty(t, cfg.AdminAPIKey)
	require.False(t, cfg.EmailEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "gallery")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("CAPTCHA_MIN_SCORE", "0.7")
	t.Setenv("UPLOAD_URL_TTL", "bogus")
	t.Setenv("RESEND_API_KEY", "k")
	t.Setenv("CONTACT_TO_EMAIL", "to@example.com")
	t.Setenv("CONTACT_FROM_EMAIL", "from@example.com")
	t.Setenv("TELEGRAM_BOT_TOKEN", "t")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg := Load()
	require.Equal(t, "postgres://u:p@db:6543/gallery?sslmode=disable", cfg.PostgresDSN())
	require.Equal(t, 30*time.Second, cfg.RedisTTL)
	require.Equal(t, 0.7, cfg.CaptchaMinScore)
	// некорректное значение заменяется значением по умолчанию
	require.Equal(t, 2*time.Hour, cfg.UploadURLTTL)
	require.True(t, cfg.EmailEnabled())
	require.False(t, cfg.TelegramEnabled())
}

func TestLoadConsumer(t *testing.T) {
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("CONSUMER_PORT", "")
	cfg := LoadConsumer()
	require.Equal(t, 25, cfg.BatchSize)
	require.Equal(t, "8081", cfg.Port)
}
