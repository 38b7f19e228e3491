package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	nats "github.com/nats-io/nats.go"

	"GalleryStudio/internal/cart"
	"GalleryStudio/internal/config"
	"GalleryStudio/internal/gallery"
	"GalleryStudio/internal/repository"
	"GalleryStudio/internal/scheduler"
	"GalleryStudio/internal/service"
	externalHttp "GalleryStudio/internal/transport/http"
	"GalleryStudio/pkg/cache"
	"GalleryStudio/pkg/captcha"
	"GalleryStudio/pkg/github"
	"GalleryStudio/pkg/logger"
	"GalleryStudio/pkg/notify"
	"GalleryStudio/pkg/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env не найден, используем переменные окружения")
	}
	cfg := config.Load()

	// подключаем Postgres
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping Postgres: %v", err)
	}

	// применяем миграции Postgres
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("failed to create migrate driver: %v", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations/postgres", "postgres", driver)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	// Redis: кэш списков и корзины
	cacheClient := cache.NewRedisClient(&redis.Options{Addr: cfg.RedisAddr})
	// NATS: журнал событий
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to NATS: %v", err)
	}
	events := logger.NewClient(nc, cfg.NATSSubject)

	// хранилище изображений необязательно; интерфейсы остаются nil без S3
	var (
		images   service.Storage
		uploader externalHttp.Uploader
	)
	if cfg.StorageEndpoint != "" {
		s3, err := storage.NewS3Storage(storage.Config{
			Endpoint:      cfg.StorageEndpoint,
			Region:        cfg.StorageRegion,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			Bucket:        cfg.StorageBucket,
			PublicBaseURL: cfg.StoragePublicURL,
		})
		if err != nil {
			log.Fatalf("failed to configure storage: %v", err)
		}
		images = s3
		uploader = service.NewUploadService(s3, cfg.UploadURLTTL)
	} else {
		log.Printf("STORAGE_ENDPOINT не задан, загрузка изображений отключена")
	}

	var notifiers []service.Notifier
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, notify.NewEmailNotifier(notify.EmailConfig{
			APIKey: cfg.ResendAPIKey,
			From:   cfg.ContactFromEmail,
			To:     cfg.ContactToEmail,
		}, nil))
	}
	if cfg.TelegramEnabled() {
		notifiers = append(notifiers, notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, "", nil))
	}

	var verifier service.Verifier
	if v := captcha.NewVerifier(cfg.CaptchaSecret, cfg.CaptchaVerifyURL, cfg.CaptchaMinScore, nil); v.Enabled() {
		verifier = v
	}

	// репозитории и сервисы
	projectRepo := repository.NewProjectRepository(db)
	projects := service.NewProjectsService(projectRepo, cacheClient, events, images, cfg.RedisTTL)
	contact := service.NewContactService(repository.NewContactRepository(db), verifier, events, notifiers...)
	importer := service.NewImportService(github.NewClient(nil, cfg.GitHubToken), projectRepo, cacheClient, events)
	carts := cart.NewService(cacheClient, cfg.CartTTL)
	pages, err := gallery.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	// периодическая синхронизация с GitHub
	sched := scheduler.New(importer)
	if err := sched.Start(cfg.GitHubSyncSchedule); err != nil {
		log.Fatalf("invalid GITHUB_SYNC_SCHEDULE: %v", err)
	}

	// настраиваем HTTP маршруты
	r := mux.NewRouter()
	r.Use(externalHttp.LoggingMiddleware())
	r.Use(externalHttp.CORSMiddleware)
	h := externalHttp.NewHandler(externalHttp.Services{
		Projects: projects,
		Contact:  contact,
		Importer: importer,
		Uploader: uploader,
		Cart:     carts,
		Pages:    pages,
		AdminKey: cfg.AdminAPIKey,
		Checks: []externalHttp.ReadyCheck{
			db.PingContext,
			cacheClient.Ping,
		},
	})
	h.RegisterRoutes(r)

	srvHttp := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Printf("starting server at %s", cfg.HTTPAddr)
		if err := srvHttp.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// ожидаем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Printf("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srvHttp.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	sched.Stop()
	// дожидаемся фоновых уведомлений
	contact.Wait()
	log.Printf("server exited properly")
	if err := cacheClient.Close(); err != nil {
		log.Printf("failed to close Redis client: %v", err)
	}
	if err := nc.Drain(); err != nil {
		log.Printf("failed to drain NATS connection: %v", err)
	}
	nc.Close()
}
