package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Supabase
	SupabaseURL            string `env:"SUPABASE_URL"`
	SupabasePublishableKey string `env:"SUPABASE_PUBLISHABLE_KEY"`
	SupabaseJWTSecret      string `env:"SUPABASE_JWT_SECRET"`

	// Storage buckets
	PortfolioBucket  string `env:"SUPABASE_PORTFOLIO_BUCKET" envDefault:"portfolio-images"`
	AttachmentBucket string `env:"SUPABASE_ATTACHMENT_BUCKET" envDefault:"proposal-attachments"`
	GeneratedBucket  string `env:"SUPABASE_GENERATED_BUCKET" envDefault:"generated-images"`

	// Database
	DatabaseURL          string `env:"DATABASE_URL"`
	DatabaseMaxOpenConns int    `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`

	// Image generation API
	AIAPIBaseURL string        `env:"AI_API_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AIAPIKey     string        `env:"AI_API_KEY"`
	AITextModel  string        `env:"AI_TEXT_MODEL" envDefault:"gpt-4o-mini"`
	AIImageModel string        `env:"AI_IMAGE_MODEL" envDefault:"gpt-image-1"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" envDefault:"90s"`

	// Rate limiting
	GenerationRateLimit  int           `env:"GENERATION_RATE_LIMIT" envDefault:"10"`
	GenerationRateWindow time.Duration `env:"GENERATION_RATE_WINDOW" envDefault:"1h"`
	RedisURL             string        `env:"REDIS_URL"`
	APIRatePerSecond     float64       `env:"API_RATE_PER_SECOND" envDefault:"20"`
	APIRateBurst         int           `env:"API_RATE_BURST" envDefault:"40"`

	// Session cookies
	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.GenerationRateLimit < 1 || c.GenerationRateWindow <= 0 {
		return fmt.Errorf("GENERATION_RATE_LIMIT and GENERATION_RATE_WINDOW must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
