package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"GalleryStudio/internal/model"
)

// ErrNotFound возвращается при отсутствии записи
var ErrNotFound = errors.New("record not found")

// ErrEmptyTitle возвращается при попытке сохранить проект с пустым заголовком
var ErrEmptyTitle = errors.New("title is required")

// projectColumns перечисляет колонки projects в порядке сканирования scanProject
const projectColumns = `id, title, description, category, tags, cover_image_url, repo_url, live_url,
	featured, sort_order, repo_full_name, default_branch, stars_count, forks_count, language, created_at`

// projectOrder задаёт каноничный порядок выдачи проектов
const projectOrder = `ORDER BY featured DESC, sort_order ASC, created_at DESC`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, pq.Array(&p.Tags),
		&p.CoverImageURL, &p.RepoURL, &p.LiveURL, &p.Featured, &p.SortOrder,
		&p.RepoFullName, &p.DefaultBranch, &p.StarsCount, &p.ForksCount, &p.Language, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// ProjectRepository реализует доступ к таблице projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository создает новый репозиторий проектов
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListProjects возвращает проекты в каноничном порядке; featuredOnly оставляет только избранные
func (r *ProjectRepository) ListProjects(ctx context.Context, featuredOnly bool) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects `
	if featuredOnly {
		query += `WHERE featured = true `
	}
	query += projectOrder
	return r.queryProjects(ctx, query)
}

// ListGitHubProjects возвращает проекты, импортированные из GitHub
func (r *ProjectRepository) ListGitHubProjects(ctx context.Context) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE repo_full_name IS NOT NULL ORDER BY created_at`
	return r.queryProjects(ctx, query)
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()
	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// GetProject возвращает проект по id
func (r *ProjectRepository) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// CreateProject добавляет новый проект; id и created_at проставляет база
func (r *ProjectRepository) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	query := `INSERT INTO projects(title, description, category, tags, cover_image_url, repo_url, live_url, featured, sort_order)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + projectColumns
	row := r.db.QueryRowContext(ctx, query, in.Title, in.Description, in.Category, pq.Array(in.Tags),
		in.CoverImageURL, in.RepoURL, in.LiveURL, in.Featured, in.SortOrder)
	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return p, nil
}

// UpdateProject обновляет поля проекта в транзакции с блокировкой строки.
// Если обложка не передана, сохраняется текущая
func (r *ProjectRepository) UpdateProject(ctx context.Context, id uuid.UUID, in model.ProjectInput) (*model.Project, error) {
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	// выборка с блокировкой
	row := tx.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1 FOR UPDATE`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to select project for update: %w", err)
	}
	cover := in.CoverImageURL
	if cover == nil {
		cover = p.CoverImageURL
	}
	updateQuery := `UPDATE projects SET title=$1, description=$2, category=$3, tags=$4, cover_image_url=$5,
		repo_url=$6, live_url=$7, featured=$8, sort_order=$9 WHERE id=$10`
	_, err = tx.ExecContext(ctx, updateQuery, in.Title, in.Description, in.Category, pq.Array(in.Tags),
		cover, in.RepoURL, in.LiveURL, in.Featured, in.SortOrder, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	// возвращаем обновленную запись
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.Tags = in.Tags
	p.CoverImageURL = cover
	p.RepoURL = in.RepoURL
	p.LiveURL = in.LiveURL
	p.Featured = in.Featured
	p.SortOrder = in.SortOrder
	return p, nil
}

// DeleteProject удаляет проект по id
func (r *ProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted projects: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertGitHubProject создаёт или обновляет проект по repo_full_name.
// featured и sort_order существующей записи не меняются
func (r *ProjectRepository) UpsertGitHubProject(ctx context.Context, in model.GitHubProject) (*model.Project, error) {
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	query := `INSERT INTO projects(repo_full_name, repo_url, default_branch, stars_count, forks_count, language,
			title, description, category, tags, live_url, cover_image_url)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (repo_full_name) DO UPDATE SET
			repo_url=EXCLUDED.repo_url, default_branch=EXCLUDED.default_branch,
			stars_count=EXCLUDED.stars_count, forks_count=EXCLUDED.forks_count, language=EXCLUDED.language,
			title=EXCLUDED.title, description=EXCLUDED.description, category=EXCLUDED.category,
			tags=EXCLUDED.tags, live_url=EXCLUDED.live_url, cover_image_url=EXCLUDED.cover_image_url
		RETURNING ` + projectColumns
	row := r.db.QueryRowContext(ctx, query, in.RepoFullName, in.RepoURL, in.DefaultBranch, in.StarsCount,
		in.ForksCount, in.Language, in.Title, in.Description, in.Category, pq.Array(in.Tags), in.LiveURL, in.CoverImageURL)
	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert project: %w", err)
	}
	return p, nil
}

// ContactRepository реализует запись сообщений в таблицу contact_messages
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository создает новый репозиторий сообщений
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// CreateMessage сохраняет сообщение и возвращает его с id и created_at
func (r *ContactRepository) CreateMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	query := `INSERT INTO contact_messages(name, email, message, product_id, product_title)
		VALUES($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, msg.Name, msg.Email, msg.Message, msg.ProductID, msg.ProductTitle).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact message: %w", err)
	}
	return &msg, nil
}
