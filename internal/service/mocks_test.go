package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"GalleryStudio/internal/model"
	cachepkg "GalleryStudio/pkg/cache"
	"GalleryStudio/pkg/github"
)

// mockRepo реализует ProjectRepo, ContactRepo и ImportRepo через поля-функции
type mockRepo struct {
	listFn       func(ctx context.Context, featuredOnly bool) ([]model.Project, error)
	getFn        func(ctx context.Context, id uuid.UUID) (*model.Project, error)
	createFn     func(ctx context.Context, in model.ProjectInput) (*model.Project, error)
	updateFn     func(ctx context.Context, id uuid.UUID, in model.ProjectInput) (*model.Project, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	upsertFn     func(ctx context.Context, in model.GitHubProject) (*model.Project, error)
	listGitHubFn func(ctx context.Context) ([]model.Project, error)
	messageFn    func(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)

	creates, upserts, messages int
}

func (m *mockRepo) ListProjects(ctx context.Context, featuredOnly bool) ([]model.Project, error) {
	return m.listFn(ctx, featuredOnly)
}
func (m *mockRepo) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return m.getFn(ctx, id)
}
func (m *mockRepo) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	m.creates++
	return m.createFn(ctx, in)
}
func (m *mockRepo) UpdateProject(ctx context.Context, id uuid.UUID, in model.ProjectInput) (*model.Project, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockRepo) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepo) UpsertGitHubProject(ctx context.Context, in model.GitHubProject) (*model.Project, error) {
	m.upserts++
	return m.upsertFn(ctx, in)
}
func (m *mockRepo) ListGitHubProjects(ctx context.Context) ([]model.Project, error) {
	return m.listGitHubFn(ctx)
}
func (m *mockRepo) CreateMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	m.messages++
	return m.messageFn(ctx, msg)
}

// mockCache по умолчанию отвечает промахом
type mockCache struct {
	set   func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	get   func(ctx context.Context, key string) ([]byte, error)
	inval func(ctx context.Context, keys ...string) error
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.set == nil {
		return nil
	}
	return m.set(ctx, key, value, ttl)
}
func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.get == nil {
		return nil, cachepkg.ErrCacheMiss
	}
	return m.get(ctx, key)
}
func (m *mockCache) Invalidate(ctx context.Context, keys ...string) error {
	if m.inval == nil {
		return nil
	}
	return m.inval(ctx, keys...)
}

// mockLogger собирает опубликованные события
type mockLogger struct {
	mu     sync.Mutex
	events []model.Event
	err    error
}

func (m *mockLogger) PublishEvent(e model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.err
}

// mockStorage запоминает загруженные объекты
type mockStorage struct {
	uploadFn func(ctx context.Context, path string, data []byte, contentType string) error
	path     string
	data     []byte
}

func (m *mockStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	m.path, m.data = path, data
	if m.uploadFn == nil {
		return nil
	}
	return m.uploadFn(ctx, path, data, contentType)
}
func (m *mockStorage) PublicURL(path string) string { return "https://cdn.test/" + path }

type mockGitHub struct {
	getFn func(ctx context.Context, owner, name string) (*github.Repo, error)
}

func (m *mockGitHub) GetRepo(ctx context.Context, owner, name string) (*github.Repo, error) {
	return m.getFn(ctx, owner, name)
}

func ptr(s string) *string { return &s }
