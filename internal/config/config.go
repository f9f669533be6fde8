// Package config holds the explicit application configuration, constructed
// once at process start and passed into every component that needs it.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config is decoded from the environment. Provider credentials are required;
// everything else has a development default.
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Storage StorageConfig
	Auth    AuthConfig
	Stripe  StripeConfig
	Mailgun MailgunConfig
	Menu    MenuConfig
}

type ServerConfig struct {
	Host              string `env:"SERVER_HOST,default=0.0.0.0"`
	Port              int    `env:"SERVER_PORT,default=3000"`
	Env               string `env:"APP_ENV,default=staging"`
	RateLimitPerSec   int    `env:"RATE_LIMIT_PER_SEC,default=20"`
	RateLimitBurst    int    `env:"RATE_LIMIT_BURST,default=40"`
	ShutdownTimeoutS  int    `env:"SHUTDOWN_TIMEOUT_SECONDS,default=10"`
	UpstreamTimeoutS  int    `env:"UPSTREAM_TIMEOUT_SECONDS,default=10"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
	Output string `env:"LOG_OUTPUT,default=stdout"`
}

type StorageConfig struct {
	DataDir string `env:"DATA_DIR,default=.data"`
}

type AuthConfig struct {
	HashSecret string `env:"HASH_SECRET,required"`
}

type StripeConfig struct {
	Host       string `env:"STRIPE_HOST,default=api.stripe.com"`
	ChargePath string `env:"STRIPE_CHARGE_PATH,default=/v1/charges"`
	APIKey     string `env:"STRIPE_API_KEY,required"`
	Source     string `env:"STRIPE_SOURCE,default=tok_mastercard"`
}

type MailgunConfig struct {
	Host   string `env:"MAILGUN_HOST,default=api.mailgun.net"`
	Domain string `env:"MAILGUN_DOMAIN,required"`
	APIKey string `env:"MAILGUN_API_KEY,required"`
	From   string `env:"MAILGUN_FROM,default="`
}

type MenuConfig struct {
	Path string `env:"MENU_PATH,default=config/menu.yaml"`
}

// Load decodes the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return &cfg, nil
}
