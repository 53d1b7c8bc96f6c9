package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultAPIURL = "http://localhost:5000/api"

// Config holds runtime configuration for the console and worker.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	APIURL     string        `envconfig:"API_URL"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"0s"`

	RedisAddr  string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionKey string        `envconfig:"SESSION_KEY" default:"tailorshop:session"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	QREndpoint string `envconfig:"QR_ENDPOINT" default:"https://api.qrserver.com/v1/create-qr-code/"`
	QRSize     string `envconfig:"QR_SIZE" default:"200x200"`

	DashboardCacheTTL    time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"1m"`
	DashboardRefreshCron string        `envconfig:"DASHBOARD_REFRESH_CRON" default:"@every 5m"`
}

// LoadConfig reads configuration from the environment, preloading a local
// .env file when one exists.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("NEXT_PUBLIC_API_URL")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url must be http or https, got %q", c.APIURL)
	}
	if u.Host == "" {
		return errors.New("api url must include a host")
	}
	if c.SessionKey == "" {
		return errors.New("session key must be provided")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
