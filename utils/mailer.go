package utils

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/princinho/pepinterview/config"
	"github.com/princinho/pepinterview/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func RenderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, name, data)
	return buf.String(), err
}

type Mailer interface {
	Send(ctx context.Context, to models.MailDestination, subject, html string) error
}

// BrevoMailer posts transactional mail to the Brevo HTTP API.
type BrevoMailer struct {
	cfg    config.MailerConfig
	client *http.Client
}

// NewMailer returns nil when BREVO_API_URL or BREVO_API_KEY is missing.
func NewMailer(cfg config.MailerConfig) Mailer {
	if !cfg.Enabled() {
		return nil
	}
	return &BrevoMailer{cfg: cfg, client: &http.Client{Timeout: 10 * time.Second}}
}

func (m *BrevoMailer) Send(ctx context.Context, to models.MailDestination, subject, html string) error {
	marshalled, err := json.Marshal(models.SendMailRequest{
		Source:       models.MailSource{Name: m.cfg.SourceName, Email: m.cfg.SupportEmail},
		Destinations: []models.MailDestination{to},
		Subject:      subject,
		Body:         html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL, bytes.NewReader(marshalled))
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, b)
	}
	return nil
}
