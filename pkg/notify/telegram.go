package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"GalleryStudio/internal/model"
)

// DefaultTelegramURL адрес Bot API
const DefaultTelegramURL = "https://api.telegram.org"

// TelegramNotifier отправляет текст заявки в чат
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

// NewTelegramNotifier создаёт уведомитель; baseURL и client необязательны
func NewTelegramNotifier(token, chatID, baseURL string, client *http.Client) *TelegramNotifier {
	if baseURL == "" {
		baseURL = DefaultTelegramURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &TelegramNotifier{token: token, chatID: chatID, baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Notify вызывает sendMessage
func (t *TelegramNotifier) Notify(ctx context.Context, msg model.ContactMessage) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	payload := map[string]string{"chat_id": t.chatID, "text": Text(msg)}
	if err := postJSON(ctx, t.client, url, nil, payload); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}

// Text текст сообщения в чат
func Text(msg model.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New Client Lead: %s\n", productLabel(msg))
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", msg.Name, msg.Email)
	if msg.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", msg.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}
