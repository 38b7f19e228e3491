package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"GalleryStudio/internal/model"
)

// DefaultResendURL адрес отправки писем Resend
const DefaultResendURL = "https://api.resend.com/emails"

// EmailConfig настройки письма о новой заявке
type EmailConfig struct {
	APIKey  string
	From    string
	To      string
	BaseURL string
}

// EmailNotifier отправляет письмо через Resend
type EmailNotifier struct {
	cfg    EmailConfig
	client *http.Client
	tmpl   *template.Template
}

var leadTemplate = template.Must(template.New("lead").Parse(`<h2>New Client Lead</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Product}}<p><strong>Product:</strong> {{.Product}}{{if .ProductID}} ({{.ProductID}}){{end}}</p>{{end}}
{{if .Message}}<p><strong>Message:</strong></p><p>{{.Message}}</p>{{end}}`))

// NewEmailNotifier создаёт уведомитель; client может быть nil
func NewEmailNotifier(cfg EmailConfig, client *http.Client) *EmailNotifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultResendURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &EmailNotifier{cfg: cfg, client: client, tmpl: leadTemplate}
}

func (e *EmailNotifier) Name() string { return "email" }

// Notify отправляет письмо; reply_to указывает на отправителя заявки
func (e *EmailNotifier) Notify(ctx context.Context, msg model.ContactMessage) error {
	var product, productID string
	if msg.ProductTitle != nil {
		product = *msg.ProductTitle
	}
	if msg.ProductID != nil {
		productID = *msg.ProductID
	}
	var body bytes.Buffer
	err := e.tmpl.Execute(&body, map[string]string{
		"Name":      msg.Name,
		"Email":     msg.Email,
		"Message":   msg.Message,
		"Product":   product,
		"ProductID": productID,
	})
	if err != nil {
		return err
	}
	payload := map[string]interface{}{
		"from":     e.cfg.From,
		"to":       []string{e.cfg.To},
		"subject":  Subject(msg),
		"html":     body.String(),
		"reply_to": msg.Email,
	}
	headers := map[string]string{"Authorization": "Bearer " + e.cfg.APIKey}
	if err := postJSON(ctx, e.client, e.cfg.BaseURL, headers, payload); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// Subject тема письма о заявке
func Subject(msg model.ContactMessage) string {
	return fmt.Sprintf("New Client Lead: %s (%s)", productLabel(msg), msg.Email)
}
