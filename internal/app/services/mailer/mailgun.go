package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/plateful/backend/pkg/logger"
)

// MailgunConfig holds the provider endpoint and credentials.
type MailgunConfig struct {
	Host   string
	Domain string
	APIKey string
	From   string
}

// MailgunClient sends messages through the Mailgun messages API.
type MailgunClient struct {
	client *http.Client
	cfg    MailgunConfig
	log    *logger.Logger
}

var _ Mailer = (*MailgunClient)(nil)

// NewMailgunClient constructs a mailer against the configured Mailgun domain.
func NewMailgunClient(client *http.Client, cfg MailgunConfig, log *logger.Logger) (*MailgunClient, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("mailgun host required")
	}
	if strings.TrimSpace(cfg.Domain) == "" {
		return nil, fmt.Errorf("mailgun domain required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("mailgun api key required")
	}
	if cfg.From == "" {
		cfg.From = "postmaster@" + cfg.Domain
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.NewDefault("mailgun")
	}
	return &MailgunClient{client: client, cfg: cfg, log: log}, nil
}

func (c *MailgunClient) Send(ctx context.Context, to, subject, text string) (Result, error) {
	form := url.Values{}
	form.Set("from", c.cfg.From)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", text)

	endpoint := url.URL{
		Scheme: "https",
		Host:   c.cfg.Host,
		Path:   fmt.Sprintf("/v3/%s/messages", c.cfg.Domain),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("mail request: %w", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decode mail response: %w", err)
	}

	success := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
	if !success {
		c.log.WithField("status", resp.StatusCode).Warn("mail rejected by provider")
	}
	return Result{Success: success, Body: body}, nil
}
