package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"GalleryStudio/internal/model"
)

// ErrEmptyKind возвращается для события без вида
var ErrEmptyKind = errors.New("event kind is required")

// Repo пакетная запись журнала событий (ClickHouse)
type Repo interface {
	BatchInsertEvents(ctx context.Context, events []model.Event) error
}

// Consumer буферизует события из NATS и пишет их в ClickHouse пакетами по batchSize
type Consumer struct {
	repo      Repo
	batchSize int
	events    []model.Event
	mu        sync.Mutex
}

// NewConsumer создаёт Consumer с указанным репозиторием и размером пакета
func NewConsumer(repo Repo, batchSize int) *Consumer {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Consumer{repo: repo, batchSize: batchSize, events: make([]model.Event, 0, batchSize)}
}

// HandleMessage разбирает событие и при заполнении буфера отправляет пакет
func (c *Consumer) HandleMessage(ctx context.Context, data []byte) error {
	var e model.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	if e.Kind == "" {
		return ErrEmptyKind
	}
	log.Printf("Получено событие %s для %s", e.Kind, e.EntityID)
	c.mu.Lock()
	c.events = append(c.events, e)
	if len(c.events) < c.batchSize {
		c.mu.Unlock()
		return nil
	}
	batch := c.take()
	c.mu.Unlock()
	return c.repo.BatchInsertEvents(ctx, batch)
}

// Flush отправляет все накопленные события, если они есть
func (c *Consumer) Flush(ctx context.Context) error {
	c.mu.Lock()
	if len(c.events) == 0 {
		c.mu.Unlock()
		return nil
	}
	batch := c.take()
	c.mu.Unlock()
	return c.repo.BatchInsertEvents(ctx, batch)
}

// take копирует и очищает буфер; вызывается под mu
func (c *Consumer) take() []model.Event {
	batch := make([]model.Event, len(c.events))
	copy(batch, c.events)
	c.events = c.events[:0]
	return batch
}
