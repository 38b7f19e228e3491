// Пакет config читает настройки приложения из переменных окружения
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит настройки API и фоновых задач
type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string
	RedisTTL  time.Duration

	NATSURL     string
	NATSSubject string

	// ключ администратора; пустое значение даёт 500 на admin-запросах
	AdminAPIKey string

	StorageBucket    string
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StoragePublicURL string
	UploadURLTTL     time.Duration

	ResendAPIKey     string
	ContactToEmail   string
	ContactFromEmail string
	TelegramBotToken string
	TelegramChatID   string

	CaptchaSecret    string
	CaptchaVerifyURL string
	CaptchaMinScore  float64

	GitHubToken        string
	GitHubSyncSchedule string

	CartTTL time.Duration
}

// ConsumerConfig содержит настройки cmd/consumer
type ConsumerConfig struct {
	NATSURL       string
	NATSSubject   string
	ClickHouseDSN string
	BatchSize     int
	Port          string
}

// Load читает конфигурацию API
func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "appdb"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisTTL:  getEnvDuration("REDIS_TTL", time.Minute),

		NATSURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: getEnv("NATS_SUBJECT", "gallery.events"),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		StorageBucket:    getEnv("STORAGE_BUCKET", "project-images"),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		UploadURLTTL:     getEnvDuration("UPLOAD_URL_TTL", 2*time.Hour),

		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ContactToEmail:   getEnv("CONTACT_TO_EMAIL", ""),
		ContactFromEmail: getEnv("CONTACT_FROM_EMAIL", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		CaptchaSecret:    getEnv("CAPTCHA_SECRET", ""),
		CaptchaVerifyURL: getEnv("CAPTCHA_VERIFY_URL", ""),
		CaptchaMinScore:  getEnvFloat("CAPTCHA_MIN_SCORE", 0.5),

		GitHubToken:        getEnv("GITHUB_TOKEN", ""),
		GitHubSyncSchedule: getEnv("GITHUB_SYNC_SCHEDULE", ""),

		CartTTL: getEnvDuration("CART_TTL", 30*24*time.Hour),
	}
}

// LoadConsumer читает конфигурацию consumer
func LoadConsumer() *ConsumerConfig {
	return &ConsumerConfig{
		NATSURL:       getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:   getEnv("NATS_SUBJECT", "gallery.events"),
		ClickHouseDSN: getEnv("CLICKHOUSE_DSN", "tcp://localhost:9000?debug=false"),
		BatchSize:     getEnvInt("BATCH_SIZE", 10),
		Port:          getEnv("CONSUMER_PORT", "8081"),
	}
}

// PostgresDSN собирает строку подключения к Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// EmailEnabled сообщает, заданы ли все настройки Resend
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.ContactToEmail != "" && c.ContactFromEmail != ""
}

// TelegramEnabled сообщает, заданы ли настройки бота
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
