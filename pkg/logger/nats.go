// Пакет logger публикует доменные события в NATS; их читает cmd/consumer и пишет в ClickHouse
package logger

import (
	"encoding/json"
	"time"

	"GalleryStudio/internal/model"
)

// Conn минимальный интерфейс подключения к NATS (*nats.Conn)
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSClient публикует события в заданный subject
type NATSClient struct {
	conn    Conn
	subject string
	now     func() time.Time
}

// NewClient создаёт NATSClient
func NewClient(conn Conn, subject string) *NATSClient {
	return &NATSClient{conn: conn, subject: subject, now: time.Now}
}

// PublishLog отправляет готовое сообщение как есть
func (n *NATSClient) PublishLog(data []byte) error {
	return n.conn.Publish(n.subject, data)
}

// PublishEvent сериализует событие в JSON и публикует его.
// Пустое время события заполняется текущим
func (n *NATSClient) PublishEvent(e model.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = n.now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return n.PublishLog(data)
}
