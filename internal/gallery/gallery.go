// Пакет gallery готовит данные витрины: фильтрация, сортировка,
// группировка по категориям и серверный рендеринг страниц
package gallery

import (
	"sort"
	"strings"

	"GalleryStudio/internal/model"
	"GalleryStudio/internal/normalize"
)

// Режимы сортировки
const (
	SortNew   = "new"
	SortStars = "stars"
	SortAZ    = "az"
)

// CategoryAll отключает фильтр по категории
const CategoryAll = "all"

// HomeLimit число избранных проектов на главной
const HomeLimit = 6

// Labels подписи категорий
var Labels = map[string]string{
	model.CategoryUIUX:     "UI/UX",
	model.CategoryInterior: "Interior Architecture",
	model.CategoryExterior: "Exterior Architecture",
	model.CategoryOther:    "Other",
}

// DefaultImages обложки по умолчанию для проектов без картинки
var DefaultImages = map[string]string{
	model.CategoryUIUX:     "/images/uiux.png",
	model.CategoryInterior: "/images/interior.png",
	model.CategoryExterior: "/images/exterior.png",
	model.CategoryOther:    "/images/hero-image.png",
}

// Query параметры страницы галереи
type Query struct {
	Category string
	Q        string
	Sort     string
}

// ParseQuery нормализует параметры из URL
func ParseQuery(cat, q, sortMode string) Query {
	out := Query{Category: CategoryAll, Q: strings.TrimSpace(q), Sort: SortNew}
	if c := strings.TrimSpace(cat); c != "" && strings.ToLower(c) != CategoryAll {
		out.Category = normalize.Category(c)
	}
	switch sortMode {
	case SortStars, SortAZ:
		out.Sort = sortMode
	}
	return out
}

// Group проекты одной категории
type Group struct {
	Category string
	Label    string
	Projects []model.Project
}

func matches(p model.Project, q string) bool {
	hay := strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
	return strings.Contains(hay, q)
}

// Search оставляет проекты, в заголовке, описании или тегах которых есть q
func Search(list []model.Project, q string) []model.Project {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]model.Project, 0, len(list))
	for _, p := range list {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// Filter применяет поиск и фильтр категории; исходный срез не меняется
func Filter(list []model.Project, q Query) []model.Project {
	out := Search(list, q.Q)
	if q.Category == "" || q.Category == CategoryAll {
		return out
	}
	filtered := out[:0]
	for _, p := range out {
		if normalize.Category(p.Category) == q.Category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Sort упорядочивает срез на месте: new по дате, stars по звёздам, az по заголовку
func Sort(list []model.Project, mode string) {
	switch mode {
	case SortStars:
		sort.SliceStable(list, func(i, j int) bool { return list[i].StarsCount > list[j].StarsCount })
	case SortAZ:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}
}

// Apply фильтрует и сортирует список
func Apply(list []model.Project, q Query) []model.Project {
	out := Filter(list, q)
	Sort(out, q.Sort)
	return out
}

// GroupByCategory раскладывает проекты по категориям в порядке model.Categories, пустые группы пропускаются
func GroupByCategory(list []model.Project) []Group {
	byCat := map[string][]model.Project{}
	for _, p := range list {
		c := normalize.Category(p.Category)
		byCat[c] = append(byCat[c], p)
	}
	groups := []Group{}
	for _, c := range model.Categories {
		if len(byCat[c]) == 0 {
			continue
		}
		groups = append(groups, Group{Category: c, Label: Labels[c], Projects: byCat[c]})
	}
	return groups
}

// Counts число проектов по категориям, ключ "all" общий итог
func Counts(list []model.Project) map[string]int {
	counts := map[string]int{CategoryAll: len(list)}
	for _, c := range model.Categories {
		counts[c] = 0
	}
	for _, p := range list {
		counts[normalize.Category(p.Category)]++
	}
	return counts
}

// Featured возвращает не более limit избранных проектов в исходном порядке
func Featured(list []model.Project, limit int) []model.Project {
	out := []model.Project{}
	for _, p := range list {
		if len(out) >= limit {
			break
		}
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// DefaultImage обложка по умолчанию для категории
func DefaultImage(category string) string {
	if img, ok := DefaultImages[normalize.Category(category)]; ok {
		return img
	}
	return DefaultImages[model.CategoryOther]
}
