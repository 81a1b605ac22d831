// Package config defines the backend's configuration surface.
package config

import (
	"time"

	"github.com/coinpulse/backend/internal/content"
	"github.com/coinpulse/backend/pkg/config"
	"github.com/coinpulse/backend/pkg/llm"
	"github.com/coinpulse/backend/pkg/storage"
)

// Config is the full application configuration, loaded from YAML with env
// overrides. All values are immutable after process start.
type Config struct {
	Server      Server               `yaml:"server"`
	Database    storage.Config       `yaml:"database"`
	CryptoPanic CryptoPanic          `yaml:"cryptopanic"`
	Reddit      Reddit               `yaml:"reddit"`
	LLM         llm.Config           `yaml:"llm"`
	MemeFilter  content.FilterConfig `yaml:"meme_filter"`
	Timeout     config.Duration      `yaml:"timeout" env:"REQUEST_TIMEOUT"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Port       string `yaml:"port" env:"API_PORT"`
	JWTSecret  string `yaml:"jwt_secret" env:"JWT_SECRET"`
	CORSOrigin string `yaml:"cors_origin" env:"CORS_ORIGIN"`
}

// CryptoPanic holds the news source settings.
type CryptoPanic struct {
	APIKey string `yaml:"api_key" env:"CRYPTOPANIC_API_KEY"`
}

// Reddit holds the social source settings.
type Reddit struct {
	ClientID     string   `yaml:"client_id" env:"REDDIT_CLIENT_ID"`
	ClientSecret string   `yaml:"client_secret" env:"REDDIT_CLIENT_SECRET"`
	UserAgent    string   `yaml:"user_agent" env:"REDDIT_USER_AGENT"`
	Subreddits   []string `yaml:"subreddits" env:"REDDIT_SUBREDDITS"`
}

// Default returns the configuration defaults applied before loading.
func Default() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			JWTSecret:  "change-me",
			CORSOrigin: "http://localhost:3000",
		},
		Database: storage.Config{Path: "data/coinpulse.db"},
		Reddit: Reddit{
			UserAgent:  "CoinPulse/1.0",
			Subreddits: []string{"CryptoCurrencyMemes", "CryptoMemes"},
		},
		LLM:        llm.DefaultConfig(),
		MemeFilter: content.DefaultFilterConfig(),
		Timeout:    config.Duration(8 * time.Second),
	}
}

// Load reads the config file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := config.LoadOrDefault(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = cfg.Timeout.Std()
	}
	return cfg, nil
}
