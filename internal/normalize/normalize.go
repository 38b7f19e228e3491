// Пакет normalize содержит общие чистые функции нормализации входных данных,
// которые используют все обработчики (категории, теги, имена файлов, флаги)
package normalize

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"GalleryStudio/internal/model"
)

// maxFileNameLen ограничивает длину имени загружаемого файла
const maxFileNameLen = 80

var (
	unsafeFileChars = regexp.MustCompile(`[^\w.\-]+`)
	repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+/[A-Za-z0-9_.\-]+$`)
)

// ErrInvalidRepo возвращается, если идентификатор репозитория не в формате owner/repo
var ErrInvalidRepo = errors.New("repo must be in owner/repo format")

// Category приводит категорию к одному из значений uiux, interior, exterior, other
func Category(c string) string {
	s := strings.ToLower(strings.TrimSpace(c))
	switch {
	case s == "":
		return model.CategoryOther
	case strings.Contains(s, "ui"):
		return model.CategoryUIUX
	case strings.Contains(s, "inter"):
		return model.CategoryInterior
	case strings.Contains(s, "exter"):
		return model.CategoryExterior
	default:
		return model.CategoryOther
	}
}

// Tags приводит теги к срезу строк: принимает массив или строку через запятую,
// обрезает пробелы и отбрасывает пустые значения
func Tags(v interface{}) []string {
	out := []string{}
	switch x := v.(type) {
	case nil:
		return out
	case string:
		for _, part := range strings.Split(x, ",") {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
	case []string:
		for _, part := range x {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
	case []interface{}:
		for _, part := range x {
			if part == nil {
				continue
			}
			if t := strings.TrimSpace(fmt.Sprint(part)); t != "" {
				out = append(out, t)
			}
		}
	default:
		return Tags(fmt.Sprint(x))
	}
	return out
}

// Text обрезает пробелы по краям
func Text(s string) string {
	return strings.TrimSpace(s)
}

// OptionalText возвращает nil для отсутствующего или пустого значения
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// SafeFileName заменяет недопустимые символы на "_" и ограничивает длину имени
func SafeFileName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		name = fallback
	}
	safe := unsafeFileChars.ReplaceAllString(name, "_")
	if len(safe) > maxFileNameLen {
		safe = safe[:maxFileNameLen]
	}
	return safe
}

// ObjectPath строит путь объекта в хранилище с префиксом времени в миллисекундах
func ObjectPath(now time.Time, fileName string) string {
	return fmt.Sprintf("projects/%d-%s", now.UnixMilli(), fileName)
}

// ImageExt определяет расширение файла по MIME-типу изображения
func ImageExt(mime string) string {
	switch {
	case strings.Contains(mime, "png"):
		return "png"
	case strings.Contains(mime, "jpeg"):
		return "jpg"
	case strings.Contains(mime, "webp"):
		return "webp"
	default:
		return "png"
	}
}

// DecodeBase64 декодирует содержимое файла, отбрасывая префикс data URL, если он есть
func DecodeBase64(data string) ([]byte, error) {
	s := strings.TrimSpace(data)
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// RepoFullName проверяет идентификатор репозитория owner/repo; допускается ссылка на github.com
func RepoFullName(s string) (string, string, error) {
	r := strings.TrimSpace(s)
	for _, prefix := range []string{"https://github.com/", "http://github.com/", "github.com/"} {
		r = strings.TrimPrefix(r, prefix)
	}
	r = strings.TrimSuffix(strings.TrimSuffix(r, "/"), ".git")
	if !repoNamePattern.MatchString(r) {
		return "", "", ErrInvalidRepo
	}
	parts := strings.SplitN(r, "/", 2)
	return parts[0], parts[1], nil
}

// TagList принимает теги в JSON как массив или как строку через запятую
type TagList []string

// UnmarshalJSON нормализует теги при декодировании
func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Tags(raw)
	return nil
}

// FlexBool принимает флаг как bool, число или строку ("true", "1", "yes", "on")
type FlexBool bool

// UnmarshalJSON разбирает флаг в любом из допустимых представлений
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case bool:
		*b = FlexBool(x)
	case float64:
		*b = x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes", "on":
			*b = true
		default:
			*b = false
		}
	default:
		*b = false
	}
	return nil
}

// FlexInt принимает число или числовую строку; всё остальное превращается в 0
type FlexInt int

// UnmarshalJSON разбирает число в любом из допустимых представлений
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*n = FlexInt(int(x))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = FlexInt(int(f))
	default:
		*n = 0
	}
	return nil
}
