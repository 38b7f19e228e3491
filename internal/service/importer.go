package service

import (
	"context"
	"errors"
	"log"

	"GalleryStudio/internal/model"
	"GalleryStudio/internal/normalize"
	"GalleryStudio/pkg/github"
)

// GitHub источник метаданных репозиториев
type GitHub interface {
	GetRepo(ctx context.Context, owner, name string) (*github.Repo, error)
}

// ImportRepo хранилище импортированных проектов
type ImportRepo interface {
	UpsertGitHubProject(ctx context.Context, in model.GitHubProject) (*model.Project, error)
	ListGitHubProjects(ctx context.Context) ([]model.Project, error)
}

// ImportRequest тело запроса импорта; поля кроме repo переопределяют данные GitHub
type ImportRequest struct {
	Repo          string            `json:"repo"`
	RepoFullName  string            `json:"repoFullName"`
	Title         string            `json:"title"`
	Category      string            `json:"category"`
	Tags          normalize.TagList `json:"tags"`
	LiveURL       *string           `json:"liveUrl"`
	CoverImageURL *string           `json:"coverImageUrl"`
}

// ImportService импортирует репозитории GitHub как проекты
type ImportService struct {
	gh     GitHub
	repo   ImportRepo
	cache  Cache
	logger EventLogger
}

// NewImportService создаёт сервис импорта
func NewImportService(gh GitHub, r ImportRepo, c Cache, l EventLogger) *ImportService {
	return &ImportService{gh: gh, repo: r, cache: c, logger: l}
}

// Import получает репозиторий и сохраняет проект по repo_full_name.
// Неизвестный репозиторий ничего не записывает
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*model.Project, error) {
	full := req.Repo
	if full == "" {
		full = req.RepoFullName
	}
	if normalize.Text(full) == "" {
		return nil, invalid("repo is required")
	}
	owner, name, err := normalize.RepoFullName(full)
	if err != nil {
		return nil, invalid(err.Error())
	}
	r, err := s.gh.GetRepo(ctx, owner, name)
	if err != nil {
		if errors.Is(err, github.ErrRepoNotFound) {
			return nil, &NotFoundError{Message: github.ErrRepoNotFound.Error()}
		}
		return nil, err
	}
	in := model.GitHubProject{
		RepoFullName:  r.FullName,
		RepoURL:       r.HTMLURL,
		DefaultBranch: r.DefaultBranch,
		StarsCount:    r.Stars,
		ForksCount:    r.Forks,
		Language:      r.Language,
		Title:         normalize.Text(req.Title),
		Description:   r.Description,
		Category:      model.CategoryUIUX,
		Tags:          normalize.Tags([]string(req.Tags)),
		LiveURL:       normalize.OptionalText(req.LiveURL),
		CoverImageURL: normalize.OptionalText(req.CoverImageURL),
	}
	if in.Title == "" {
		in.Title = r.Name
	}
	if normalize.Text(req.Category) != "" {
		in.Category = normalize.Category(req.Category)
	}
	if in.LiveURL == nil && r.Homepage != "" {
		homepage := r.Homepage
		in.LiveURL = &homepage
	}
	p, err := s.repo.UpsertGitHubProject(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, listKeyAll, listKeyFeatured); err != nil {
		log.Printf("failed to invalidate project lists: %v", err)
	}
	publish(s.logger, model.EventProjectImported, p.ID.String(), p.Title, p)
	return p, nil
}

// RefreshAll повторно импортирует все проекты из GitHub, сохраняя ручные поля.
// Возвращает число обновлённых проектов; ошибки по отдельным репозиториям логируются
func (s *ImportService) RefreshAll(ctx context.Context) (int, error) {
	projects, err := s.repo.ListGitHubProjects(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, p := range projects {
		if p.RepoFullName == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		req := ImportRequest{
			Repo:          *p.RepoFullName,
			Title:         p.Title,
			Category:      p.Category,
			Tags:          p.Tags,
			LiveURL:       p.LiveURL,
			CoverImageURL: p.CoverImageURL,
		}
		if _, err := s.Import(ctx, req); err != nil {
			log.Printf("failed to refresh %s: %v", *p.RepoFullName, err)
			continue
		}
		updated++
	}
	return updated, nil
}
