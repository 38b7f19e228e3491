package repository

import (
	"context"
	"database/sql"
	"log"

	"GalleryStudio/internal/model"
)

// ClickhouseRepo реализует пакетную запись событий журнала в ClickHouse
type ClickhouseRepo struct {
	db *sql.DB
}

// NewClickhouseRepo создаёт новый репозиторий для ClickHouse
func NewClickhouseRepo(db *sql.DB) *ClickhouseRepo {
	return &ClickhouseRepo{db: db}
}

// BatchInsertEvents записывает пакет событий в таблицу events_log
func (r *ClickhouseRepo) BatchInsertEvents(ctx context.Context, events []model.Event) error {
	// clickhouse-go собирает блок вставки внутри транзакции
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	log.Printf("Начало пакетной вставки %d событий в ClickHouse", len(events))
	query := `INSERT INTO events_log (Kind, EntityId, Title, Payload, EventTime) VALUES (?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, e := range events {
		_, err := stmt.ExecContext(ctx, e.Kind, e.EntityID, e.Title, e.Payload, e.CreatedAt)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Успешно вставлено %d событий в ClickHouse", len(events))
	return nil
}
