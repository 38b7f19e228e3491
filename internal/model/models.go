package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Категории портфолио по умолчанию
const (
	CategoryUIUX     = "uiux"
	CategoryInterior = "interior"
	CategoryExterior = "exterior"
	CategoryOther    = "other"
)

// Categories задаёт порядок групп при выводе галереи
var Categories = []string{CategoryUIUX, CategoryInterior, CategoryExterior, CategoryOther}

// Project представляет проект портфолио (таблица projects)
type Project struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Category      string    `db:"category" json:"category"`
	Tags          []string  `db:"tags" json:"tags"`
	CoverImageURL *string   `db:"cover_image_url" json:"cover_image_url"`
	RepoURL       *string   `db:"repo_url" json:"repo_url"`
	LiveURL       *string   `db:"live_url" json:"live_url"`
	Featured      bool      `db:"featured" json:"featured"`
	SortOrder     int       `db:"sort_order" json:"sort_order"`
	RepoFullName  *string   `db:"repo_full_name" json:"repo_full_name,omitempty"`
	DefaultBranch *string   `db:"default_branch" json:"default_branch,omitempty"`
	StarsCount    int       `db:"stars_count" json:"stars_count"`
	ForksCount    int       `db:"forks_count" json:"forks_count"`
	Language      *string   `db:"language" json:"language,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ProjectInput содержит уже нормализованные поля для создания или обновления проекта
type ProjectInput struct {
	Title         string
	Description   string
	Category      string
	Tags          []string
	CoverImageURL *string
	RepoURL       *string
	LiveURL       *string
	Featured      bool
	SortOrder     int
}

// GitHubProject содержит поля проекта, полученные из GitHub, вместе с переопределениями администратора
type GitHubProject struct {
	RepoFullName  string
	RepoURL       string
	DefaultBranch string
	StarsCount    int
	ForksCount    int
	Language      *string
	Title         string
	Description   string
	Category      string
	Tags          []string
	LiveURL       *string
	CoverImageURL *string
}

// ContactMessage представляет сообщение из формы обратной связи (таблица contact_messages)
type ContactMessage struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Message      string    `db:"message" json:"message"`
	ProductID    *string   `db:"product_id" json:"productId,omitempty"`
	ProductTitle *string   `db:"product_title" json:"productTitle,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Виды событий, публикуемых в журнал
const (
	EventProjectCreated  = "project.created"
	EventProjectUpdated  = "project.updated"
	EventProjectDeleted  = "project.deleted"
	EventProjectImported = "project.imported"
	EventContactReceived = "contact.received"
)

// Event представляет запись журнала событий (NATS -> ClickHouse events_log)
type Event struct {
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entityId"`
	Title     string    `json:"title"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SortProjects упорядочивает проекты: featured desc, sort_order asc, created_at desc
func SortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
