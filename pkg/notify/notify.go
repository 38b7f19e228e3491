// Пакет notify доставляет уведомления о новых заявках из формы обратной связи:
// письмо через Resend API и сообщение в Telegram-чат
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"GalleryStudio/internal/model"
)

// Notifier отправляет одно уведомление о сообщении
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg model.ContactMessage) error
}

const defaultTimeout = 10 * time.Second

// postJSON отправляет JSON и считает ошибкой любой статус вне 2xx
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}
	return nil
}

func productLabel(msg model.ContactMessage) string {
	if msg.ProductTitle != nil && *msg.ProductTitle != "" {
		return *msg.ProductTitle
	}
	return "Service"
}
