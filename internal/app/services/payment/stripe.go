package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/plateful/backend/pkg/logger"
)

// StripeConfig holds the provider endpoint and credentials.
type StripeConfig struct {
	Host       string
	ChargePath string
	APIKey     string
}

// StripeClient charges cards through the Stripe charges API using the
// form-encoded wire format.
type StripeClient struct {
	client *http.Client
	cfg    StripeConfig
	log    *logger.Logger
}

var _ Charger = (*StripeClient)(nil)

// NewStripeClient constructs a charger against the configured Stripe host.
func NewStripeClient(client *http.Client, cfg StripeConfig, log *logger.Logger) (*StripeClient, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("stripe host required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("stripe api key required")
	}
	if cfg.ChargePath == "" {
		cfg.ChargePath = "/v1/charges"
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.NewDefault("stripe")
	}
	return &StripeClient{client: client, cfg: cfg, log: log}, nil
}

func (c *StripeClient) Charge(ctx context.Context, amountCents int64, currency, source, description string) (Result, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("source", source)
	form.Set("description", description)
	form.Set("capture", "true")

	endpoint := url.URL{Scheme: "https", Host: c.cfg.Host, Path: c.cfg.ChargePath}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decode charge response: %w", err)
	}

	success := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
	if !success {
		c.log.WithField("status", resp.StatusCode).Warn("charge rejected by provider")
	}
	return Result{Success: success, Body: body}, nil
}
