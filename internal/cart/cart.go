// Пакет cart хранит корзину посетителя: явное состояние Cart и Store
// для его сохранения (Redis в рабочем окружении)
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	cachepkg "GalleryStudio/pkg/cache"
)

// ErrItemNotFound возвращается при удалении по несуществующему индексу
var ErrItemNotFound = errors.New("cart item not found")

// ErrNoSession возвращается, если идентификатор корзины не передан
var ErrNoSession = errors.New("cart session is required")

// Item позиция корзины
type Item struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Category string    `json:"category"`
	Qty      int       `json:"qty"`
	Date     time.Time `json:"date"`
}

// Cart состояние корзины
type Cart struct {
	Items []Item `json:"items"`
}

// Add добавляет позицию, заполняя значения по умолчанию
func (c *Cart) Add(item Item, now time.Time) Item {
	if strings.TrimSpace(item.ID) == "" {
		item.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if strings.TrimSpace(item.Title) == "" {
		item.Title = "Unnamed"
	}
	if item.Qty <= 0 {
		item.Qty = 1
	}
	item.Date = now.UTC()
	c.Items = append(c.Items, item)
	return item
}

// Remove удаляет позицию по индексу
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrItemNotFound
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// Count число позиций (значок корзины)
func (c *Cart) Count() int {
	return len(c.Items)
}

// Clear очищает корзину
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// Store хранилище состояния корзин, совпадает с интерфейсом кэша
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// Service загружает и сохраняет корзины по идентификатору сессии
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewService создаёт сервис корзины
func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl, now: time.Now}
}

// NewSessionID выдаёт идентификатор новой корзины
func NewSessionID() string {
	return uuid.NewString()
}

func key(session string) string {
	return "cart:" + session
}

// Load возвращает корзину; отсутствующая корзина пуста
func (s *Service) Load(ctx context.Context, session string) (*Cart, error) {
	if session == "" {
		return nil, ErrNoSession
	}
	data, err := s.store.Get(ctx, key(session))
	if errors.Is(err, cachepkg.ErrCacheMiss) {
		return &Cart{Items: []Item{}}, nil
	}
	if err != nil {
		return nil, err
	}
	c := &Cart{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, session string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key(session), data, s.ttl)
}

// Add добавляет позицию и сохраняет корзину
func (s *Service) Add(ctx context.Context, session string, item Item) (*Cart, error) {
	c, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	c.Add(item, s.now())
	if err := s.save(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove удаляет позицию по индексу и сохраняет корзину
func (s *Service) Remove(ctx context.Context, session string, index int) (*Cart, error) {
	c, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(index); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear удаляет корзину из хранилища
func (s *Service) Clear(ctx context.Context, session string) error {
	if session == "" {
		return ErrNoSession
	}
	return s.store.Invalidate(ctx, key(session))
}
