package gallery

import (
	"embed"
	"html/template"
	"io"

	"GalleryStudio/internal/model"
	"GalleryStudio/internal/normalize"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxCardTags число тегов на карточке
const maxCardTags = 6

// Card данные карточки проекта
type Card struct {
	ID            string
	Title         string
	Description   string
	CategoryLabel string
	Image         string
	Fallback      string
	Tags          []string
	Featured      bool
	Stars         int
	RepoURL       string
	LiveURL       string
}

// Chip кнопка фильтра категории
type Chip struct {
	Key    string
	Label  string
	Count  int
	Active bool
}

// Section группа карточек
type Section struct {
	Label string
	Cards []Card
}

// GalleryView данные страницы галереи
type GalleryView struct {
	Query    Query
	Chips    []Chip
	Sections []Section
	Empty    bool
}

// HomeView данные главной страницы
type HomeView struct {
	Cards []Card
}

// Renderer рендерит страницы из встроенных шаблонов
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer разбирает шаблоны
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: t}, nil
}

// NewCard строит карточку; отсутствующая обложка заменяется картинкой категории
func NewCard(p model.Project) Card {
	cat := normalize.Category(p.Category)
	c := Card{
		ID:            p.ID.String(),
		Title:         p.Title,
		Description:   p.Description,
		CategoryLabel: Labels[cat],
		Fallback:      DefaultImage(cat),
		Featured:      p.Featured,
		Stars:         p.StarsCount,
	}
	if c.Title == "" {
		c.Title = "Untitled"
	}
	c.Image = c.Fallback
	if p.CoverImageURL != nil && *p.CoverImageURL != "" {
		c.Image = *p.CoverImageURL
	}
	c.Tags = p.Tags
	if len(c.Tags) > maxCardTags {
		c.Tags = c.Tags[:maxCardTags]
	}
	if p.RepoURL != nil {
		c.RepoURL = *p.RepoURL
	}
	if p.LiveURL != nil {
		c.LiveURL = *p.LiveURL
	}
	return c
}

func cards(list []model.Project) []Card {
	out := make([]Card, 0, len(list))
	for _, p := range list {
		out = append(out, NewCard(p))
	}
	return out
}

// BuildGalleryView применяет запрос к списку. Счётчики считаются после поиска, но до фильтра категории.
// При выборе "all" карточки сгруппированы по категориям
func BuildGalleryView(list []model.Project, q Query) GalleryView {
	counts := Counts(Search(list, q.Q))
	chips := []Chip{{Key: CategoryAll, Label: "All", Count: counts[CategoryAll], Active: q.Category == CategoryAll}}
	chipLabels := map[string]string{
		model.CategoryUIUX:     "UI/UX",
		model.CategoryInterior: "Interior",
		model.CategoryExterior: "Exterior",
		model.CategoryOther:    "Other",
	}
	for _, c := range model.Categories {
		chips = append(chips, Chip{Key: c, Label: chipLabels[c], Count: counts[c], Active: q.Category == c})
	}

	view := GalleryView{Query: q, Chips: chips}
	filtered := Apply(list, q)
	if len(filtered) == 0 {
		view.Empty = true
		return view
	}
	if q.Category == CategoryAll {
		for _, g := range GroupByCategory(filtered) {
			view.Sections = append(view.Sections, Section{Label: g.Label, Cards: cards(g.Projects)})
		}
		return view
	}
	view.Sections = []Section{{Cards: cards(filtered)}}
	return view
}

// RenderGallery рендерит страницу галереи
func (r *Renderer) RenderGallery(w io.Writer, list []model.Project, q Query) error {
	return r.tmpl.ExecuteTemplate(w, "gallery.html", BuildGalleryView(list, q))
}

// RenderHome рендерит главную с избранными проектами
func (r *Renderer) RenderHome(w io.Writer, list []model.Project) error {
	return r.tmpl.ExecuteTemplate(w, "home.html", HomeView{Cards: cards(Featured(list, HomeLimit))})
}
