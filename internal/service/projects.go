package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"GalleryStudio/internal/model"
	"GalleryStudio/internal/normalize"
	"GalleryStudio/internal/repository"
)

// ProjectRepo операции хранилища проектов (Postgres)
type ProjectRepo interface {
	ListProjects(ctx context.Context, featuredOnly bool) ([]model.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in model.ProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

// Cache кэш списков проектов (Redis)
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// EventLogger публикует доменные события (NATS)
type EventLogger interface {
	PublishEvent(e model.Event) error
}

// Storage сохраняет загруженные изображения (S3)
type Storage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

// Ключи кэша списков
const (
	listKeyAll      = "projects:list:all"
	listKeyFeatured = "projects:list:featured"
)

// ProjectRequest тело запроса создания или обновления проекта
type ProjectRequest struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Tags          normalize.TagList  `json:"tags"`
	CoverImageURL *string            `json:"cover_image_url"`
	RepoURL       *string            `json:"repo_url"`
	LiveURL       *string            `json:"live_url"`
	Featured      normalize.FlexBool `json:"featured"`
	SortOrder     normalize.FlexInt  `json:"sort_order"`
	ImageBase64   string             `json:"image_base64"`
	ImageMime     string             `json:"image_mime"`
	ImageFilename string             `json:"image_filename"`
}

// ProjectsService реализует чтение и администрирование проектов:
// нормализация полей, загрузка обложки, кэш списков, события
type ProjectsService struct {
	repo    ProjectRepo
	cache   Cache
	logger  EventLogger
	storage Storage
	ttl     time.Duration
	now     func() time.Time
}

// NewProjectsService создаёт сервис; storage может быть nil, тогда загрузка изображений недоступна
func NewProjectsService(r ProjectRepo, c Cache, l EventLogger, st Storage, ttl time.Duration) *ProjectsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ProjectsService{repo: r, cache: c, logger: l, storage: st, ttl: ttl, now: time.Now}
}

func listKey(featuredOnly bool) string {
	if featuredOnly {
		return listKeyFeatured
	}
	return listKeyAll
}

// List возвращает проекты в каноничном порядке, сначала пробуя кэш
func (s *ProjectsService) List(ctx context.Context, featuredOnly bool) ([]model.Project, error) {
	key := listKey(featuredOnly)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var projects []model.Project
		if err := json.Unmarshal(data, &projects); err == nil {
			model.SortProjects(projects)
			return projects, nil
		}
	}
	projects, err := s.repo.ListProjects(ctx, featuredOnly)
	if err != nil {
		return nil, err
	}
	model.SortProjects(projects)
	if data, err := json.Marshal(projects); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			log.Printf("failed to cache %s: %v", key, err)
		}
	}
	return projects, nil
}

// Get возвращает проект по id
func (s *ProjectsService) Get(ctx context.Context, rawID string) (*model.Project, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetProject(ctx, id)
}

// Create проверяет заголовок, загружает обложку при наличии и сохраняет проект
func (s *ProjectsService) Create(ctx context.Context, req ProjectRequest) (*model.Project, error) {
	in, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.CreateProject(ctx, in)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, model.EventProjectCreated, p.ID.String(), p.Title, p)
	return p, nil
}

// Update требует id существующего проекта; обложка без новой загрузки сохраняется
func (s *ProjectsService) Update(ctx context.Context, req ProjectRequest) (*model.Project, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	in, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.UpdateProject(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, model.EventProjectUpdated, p.ID.String(), p.Title, p)
	return p, nil
}

// Delete удаляет проект по id
func (s *ProjectsService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, model.EventProjectDeleted, id.String(), "", nil)
	return nil
}

// buildInput нормализует запрос; изображение загружается только после проверки заголовка
func (s *ProjectsService) buildInput(ctx context.Context, req ProjectRequest) (model.ProjectInput, error) {
	title := normalize.Text(req.Title)
	if title == "" {
		return model.ProjectInput{}, invalid(repository.ErrEmptyTitle.Error())
	}
	in := model.ProjectInput{
		Title:         title,
		Description:   normalize.Text(req.Description),
		Category:      normalize.Category(req.Category),
		Tags:          normalize.Tags([]string(req.Tags)),
		CoverImageURL: normalize.OptionalText(req.CoverImageURL),
		RepoURL:       normalize.OptionalText(req.RepoURL),
		LiveURL:       normalize.OptionalText(req.LiveURL),
		Featured:      bool(req.Featured),
		SortOrder:     int(req.SortOrder),
	}
	if req.ImageBase64 != "" && req.ImageMime != "" {
		url, err := s.uploadImage(ctx, req)
		if err != nil {
			return model.ProjectInput{}, err
		}
		in.CoverImageURL = &url
	}
	return in, nil
}

func (s *ProjectsService) uploadImage(ctx context.Context, req ProjectRequest) (string, error) {
	if s.storage == nil {
		return "", errors.New("upload failed: storage is not configured")
	}
	data, err := normalize.DecodeBase64(req.ImageBase64)
	if err != nil {
		return "", invalid("image_base64 is not valid base64")
	}
	ext := normalize.ImageExt(req.ImageMime)
	name := normalize.SafeFileName(req.ImageFilename, "cover."+ext)
	path := normalize.ObjectPath(s.now(), name)
	if err := s.storage.Upload(ctx, path, data, req.ImageMime); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return s.storage.PublicURL(path), nil
}

// afterWrite сбрасывает кэш списков и публикует событие; ошибки только логируются
func (s *ProjectsService) afterWrite(ctx context.Context, kind, id, title string, payload interface{}) {
	if err := s.cache.Invalidate(ctx, listKeyAll, listKeyFeatured); err != nil {
		log.Printf("failed to invalidate project lists: %v", err)
	}
	publish(s.logger, kind, id, title, payload)
}

func publish(l EventLogger, kind, id, title string, payload interface{}) {
	if l == nil {
		return
	}
	e := model.Event{Kind: kind, EntityID: id, Title: title}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			e.Payload = string(data)
		}
	}
	if err := l.PublishEvent(e); err != nil {
		log.Printf("failed to publish %s event: %v", kind, err)
	}
}

func parseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, invalid("id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("id is not a valid uuid")
	}
	return id, nil
}
